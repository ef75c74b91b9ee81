package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/model"
)

type PGRepository struct {
	db *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.db.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories WHERE is_active = true ORDER BY sort_order ASC, name ASC`
	err := r.db.SelectContext(ctx, &categories, query)
	return categories, err
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, name, icon, color, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :name, :icon, :color, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.db.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories SET
            name = :name,
            icon = :icon,
            color = :color,
            sort_order = :sort_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.db.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) CountItems(ctx context.Context, categoryID string) (int, error) {
	var count int
	query := `SELECT count(*) FROM items WHERE category_id = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, categoryID)
	return count, err
}
