package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type CategoryTotal struct {
	CategoryID *uuid.UUID
	Name       *string
	TotalCents int64
	Count      int
}

type OverviewStats struct {
	ExpenseCount int
	TotalCents   int64
	FirstSpentAt *time.Time
	LastSpentAt  *time.Time
}

// NewStatsRepository создает репозиторий статистики.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// TotalsByCategory возвращает суммы трат по категориям за период.
// Траты без категории попадают в строку с NULL-категорией.
func (r *StatsRepository) TotalsByCategory(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]CategoryTotal, error) {
	query := `SELECT e.category_id, c.name,
	                 COALESCE(SUM(e.amount_cents), 0) AS total_cents,
	                 COUNT(*) AS expense_count
	          FROM expenses e
	          LEFT JOIN categories c ON c.id = e.category_id
	          WHERE e.user_id = $1`
	args := []any{userID}
	query, args = appendDateRange(query, args, "e.spent_at", from, to)
	query += ` GROUP BY e.category_id, c.name
	           ORDER BY total_cents DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]CategoryTotal, 0)
	for rows.Next() {
		var row CategoryTotal
		if err := rows.Scan(&row.CategoryID, &row.Name, &row.TotalCents, &row.Count); err != nil {
			return nil, err
		}
		totals = append(totals, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// Overview возвращает сводную статистику трат пользователя.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (OverviewStats, error) {
	var stats OverviewStats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(amount_cents), 0),
		        MIN(spent_at),
		        MAX(spent_at)
		 FROM expenses
		 WHERE user_id = $1`,
		userID,
	).Scan(&stats.ExpenseCount, &stats.TotalCents, &stats.FirstSpentAt, &stats.LastSpentAt)
	if err != nil {
		return stats, err
	}

	return stats, nil
}
