package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/item"
	"github.com/pantryos/inventory-service/internal/item/dto"
	"github.com/pantryos/inventory-service/internal/model"
)

type PGRepository struct {
	db sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) WithTx(tx *sqlx.Tx) item.Repository {
	return &PGRepository{db: tx}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	query := `SELECT * FROM items WHERE id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, r.db, &it, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ItemFilters) ([]model.Item, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := map[string]interface{}{}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.LowStock {
		conditions = append(conditions, "minimum_stock IS NOT NULL AND quantity <= minimum_stock")
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR barcode = :barcode)")
		args["search"] = "%" + f.Search + "%"
		args["barcode"] = f.Search
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	count, err := r.namedCount(ctx, "SELECT count(*) FROM items"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM items" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, count, rows.Err()
}

func (r *PGRepository) Create(ctx context.Context, it *model.Item) error {
	query := `
        INSERT INTO items (
            id, name, quantity, unit, minimum_stock, maximum_stock,
            expiry_date, barcode, category_id, is_active, deleted_at,
            version, created_at, updated_at
        )
        VALUES (
            :id, :name, :quantity, :unit, :minimum_stock, :maximum_stock,
            :expiry_date, :barcode, :category_id, :is_active, :deleted_at,
            :version, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, it)
	return err
}

func (r *PGRepository) UpdateVersioned(ctx context.Context, it *model.Item, readVersion int64) (float64, bool, error) {
	query := `
        UPDATE items SET
            name = :name,
            quantity = :quantity,
            unit = :unit,
            minimum_stock = :minimum_stock,
            maximum_stock = :maximum_stock,
            expiry_date = :expiry_date,
            barcode = :barcode,
            category_id = :category_id,
            is_active = :is_active,
            version = :version,
            updated_at = :updated_at
        WHERE id = :id AND version = :read_version AND deleted_at IS NULL
        RETURNING quantity
    `
	arg := map[string]interface{}{
		"id":            it.ID,
		"name":          it.Name,
		"quantity":      it.Quantity,
		"unit":          it.Unit,
		"minimum_stock": it.MinimumStock,
		"maximum_stock": it.MaximumStock,
		"expiry_date":   it.ExpiryDate,
		"barcode":       it.Barcode,
		"category_id":   it.CategoryID,
		"is_active":     it.IsActive,
		"version":       it.Version,
		"updated_at":    it.UpdatedAt,
		"read_version":  readVersion,
	}

	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, arg)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		// Version guard missed: a concurrent writer got there first.
		return 0, false, rows.Err()
	}
	var stored float64
	if err := rows.Scan(&stored); err != nil {
		return 0, false, err
	}
	return stored, true, nil
}

func (r *PGRepository) SoftDelete(ctx context.Context, id string, now time.Time) (bool, error) {
	query := `
        UPDATE items SET deleted_at = $1, is_active = false, updated_at = $1
        WHERE id = $2 AND deleted_at IS NULL
    `
	res, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepository) AppendHistory(ctx context.Context, h *model.ItemHistory) error {
	query := `
        INSERT INTO item_history (
            id, item_id, action, quantity, before_value, after_value,
            reason, created_at
        )
        VALUES (
            :id, :item_id, :action, :quantity, :before_value, :after_value,
            :reason, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, h)
	return err
}

func (r *PGRepository) ListHistory(ctx context.Context, itemID string) ([]model.ItemHistory, error) {
	var records []model.ItemHistory
	query := `SELECT * FROM item_history WHERE item_id = $1 ORDER BY created_at ASC`
	err := sqlx.SelectContext(ctx, r.db, &records, query, itemID)
	return records, err
}

func (r *PGRepository) namedCount(ctx context.Context, query string, args map[string]interface{}) (int, error) {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, args)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, rows.Err()
}
