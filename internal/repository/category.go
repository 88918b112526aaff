package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelrochagorgonio23/previsor-de-gastos/internal/models"
)

type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository создает репозиторий категорий трат.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser возвращает категории пользователя в алфавитном порядке.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, created_at
		 FROM categories
		 WHERE user_id = $1
		 ORDER BY name, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Create добавляет категорию пользователю.
func (r *CategoryRepository) Create(ctx context.Context, userID uuid.UUID, name string) (models.Category, error) {
	var category models.Category

	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (id, user_id, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, name, created_at`,
		uuid.New(), userID, name,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return category, ErrConflict
		}
		return category, err
	}

	return category, nil
}

// Rename переименовывает категорию пользователя.
func (r *CategoryRepository) Rename(ctx context.Context, userID, categoryID uuid.UUID, name string) (models.Category, error) {
	var category models.Category

	err := r.db.QueryRow(ctx,
		`UPDATE categories
		 SET name = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, created_at`,
		categoryID, userID, name,
	).Scan(&category.ID, &category.UserID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return category, ErrConflict
		}
		return category, err
	}

	return category, nil
}

// Delete удаляет категорию пользователя. Траты категории остаются
// без категории за счет ON DELETE SET NULL.
func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM categories
		 WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
