package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/models"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

// ExpenseWithCategory — трата вместе с именем категории для выдачи списков.
type ExpenseWithCategory struct {
	models.Expense
	CategoryName *string
}

// ExpenseAmount — усеченная запись для построения прогноза.
type ExpenseAmount struct {
	SpentAt     time.Time
	AmountCents int64
}

// NewExpenseRepository создает репозиторий трат.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// ListByUser возвращает траты пользователя за период, отсортированные по дате.
// Границы периода необязательны.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]ExpenseWithCategory, error) {
	query := `SELECT e.id, e.user_id, e.category_id, c.name, e.spent_at, e.description, e.amount_cents, e.created_at, e.updated_at
	          FROM expenses e
	          LEFT JOIN categories c ON c.id = e.category_id
	          WHERE e.user_id = $1`
	args := []any{userID}
	query, args = appendDateRange(query, args, "e.spent_at", from, to)
	query += " ORDER BY e.spent_at, e.created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]ExpenseWithCategory, 0)
	for rows.Next() {
		var expense ExpenseWithCategory
		err := rows.Scan(
			&expense.ID, &expense.UserID, &expense.CategoryID, &expense.CategoryName,
			&expense.SpentAt, &expense.Description, &expense.AmountCents,
			&expense.CreatedAt, &expense.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// History возвращает полную историю трат пользователя для прогноза:
// только даты и суммы, по возрастанию даты.
func (r *ExpenseRepository) History(ctx context.Context, userID uuid.UUID) ([]ExpenseAmount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT spent_at, amount_cents
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY spent_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]ExpenseAmount, 0)
	for rows.Next() {
		var record ExpenseAmount
		if err := rows.Scan(&record.SpentAt, &record.AmountCents); err != nil {
			return nil, err
		}
		history = append(history, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// Create добавляет трату с проверкой принадлежности категории пользователю.
func (r *ExpenseRepository) Create(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, spentAt time.Time, description string, amountCents int64) (models.Expense, error) {
	var expense models.Expense

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return expense, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := ensureCategoryOwned(ctx, tx, userID, categoryID); err != nil {
		return expense, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, user_id, category_id, spent_at, description, amount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, category_id, spent_at, description, amount_cents, created_at, updated_at`,
		uuid.New(), userID, categoryID, spentAt, description, amountCents,
	).Scan(&expense.ID, &expense.UserID, &expense.CategoryID, &expense.SpentAt, &expense.Description, &expense.AmountCents, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return expense, err
	}

	if err := tx.Commit(ctx); err != nil {
		return expense, err
	}

	return expense, nil
}

// Update изменяет трату пользователя.
func (r *ExpenseRepository) Update(ctx context.Context, userID, expenseID uuid.UUID, categoryID *uuid.UUID, spentAt time.Time, description string, amountCents int64) (models.Expense, error) {
	var expense models.Expense

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return expense, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := ensureCategoryOwned(ctx, tx, userID, categoryID); err != nil {
		return expense, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE expenses
		 SET category_id = $3,
		     spent_at = $4,
		     description = $5,
		     amount_cents = $6,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, category_id, spent_at, description, amount_cents, created_at, updated_at`,
		expenseID, userID, categoryID, spentAt, description, amountCents,
	).Scan(&expense.ID, &expense.UserID, &expense.CategoryID, &expense.SpentAt, &expense.Description, &expense.AmountCents, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense, ErrNotFound
		}
		return expense, err
	}

	if err := tx.Commit(ctx); err != nil {
		return expense, err
	}

	return expense, nil
}

// Delete удаляет трату пользователя.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM expenses
		 WHERE id = $1 AND user_id = $2`,
		expenseID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func ensureCategoryOwned(ctx context.Context, tx pgx.Tx, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM categories WHERE id = $1 AND user_id = $2
		 )`,
		*categoryID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return ErrInvalid
	}

	return nil
}

// appendDateRange дописывает к запросу условия по дате и возвращает
// обновленный запрос вместе с аргументами.
func appendDateRange(query string, args []any, column string, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}

	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}

	return query, args
}
