package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/model"
	"github.com/pantryos/inventory-service/internal/shoppinglist"
)

type PGRepository struct {
	db sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) WithTx(tx *sqlx.Tx) shoppinglist.Repository {
	return &PGRepository{db: tx}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.ShoppingListItem, error) {
	var entry model.ShoppingListItem
	query := `SELECT * FROM shopping_list_items WHERE id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, r.db, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PGRepository) FindUncheckedByItem(ctx context.Context, itemID string) (*model.ShoppingListItem, error) {
	var entry model.ShoppingListItem
	query := `
        SELECT * FROM shopping_list_items
        WHERE item_id = $1 AND is_checked = false
        LIMIT 1
    `
	err := sqlx.GetContext(ctx, r.db, &entry, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PGRepository) ListUnchecked(ctx context.Context) ([]model.ShoppingListItem, error) {
	var entries []model.ShoppingListItem
	query := `
        SELECT * FROM shopping_list_items
        WHERE is_checked = false
        ORDER BY priority DESC, created_at ASC
    `
	err := sqlx.SelectContext(ctx, r.db, &entries, query)
	return entries, err
}

func (r *PGRepository) Create(ctx context.Context, entry *model.ShoppingListItem) error {
	query := `
        INSERT INTO shopping_list_items (
            id, name, quantity, unit, priority, notes, is_checked,
            checked_at, item_id, created_at
        )
        VALUES (
            :id, :name, :quantity, :unit, :priority, :notes, :is_checked,
            :checked_at, :item_id, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, entry)
	return err
}

func (r *PGRepository) Update(ctx context.Context, entry *model.ShoppingListItem) error {
	query := `
        UPDATE shopping_list_items SET
            name = :name,
            quantity = :quantity,
            unit = :unit,
            priority = :priority,
            notes = :notes,
            is_checked = :is_checked,
            checked_at = :checked_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, entry)
	return err
}
