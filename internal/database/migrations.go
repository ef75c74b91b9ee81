package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		icon TEXT,
		color TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		quantity NUMERIC NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		unit TEXT NOT NULL DEFAULT '',
		minimum_stock NUMERIC,
		maximum_stock NUMERIC,
		expiry_date TIMESTAMPTZ,
		barcode TEXT,
		category_id UUID REFERENCES categories(id),
		is_active BOOLEAN NOT NULL DEFAULT true,
		deleted_at TIMESTAMPTZ,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_category_id ON items(category_id)`,
	`CREATE TABLE IF NOT EXISTS item_history (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES items(id),
		action TEXT NOT NULL CHECK (action IN ('ADD', 'REMOVE', 'UPDATE', 'ADJUST')),
		quantity NUMERIC NOT NULL,
		before_value NUMERIC,
		after_value NUMERIC NOT NULL,
		reason TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_item_history_item_id ON item_history(item_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES items(id),
		type TEXT NOT NULL CHECK (type IN ('LOW_STOCK', 'EXPIRY', 'OVERSTOCK')),
		threshold_value NUMERIC,
		is_enabled BOOLEAN NOT NULL DEFAULT true,
		firing BOOLEAN NOT NULL DEFAULT false,
		last_triggered_at TIMESTAMPTZ,
		acknowledged_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (item_id, type)
	)`,
	`CREATE TABLE IF NOT EXISTS shopping_list_items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		quantity NUMERIC NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 1,
		notes TEXT,
		is_checked BOOLEAN NOT NULL DEFAULT false,
		checked_at TIMESTAMPTZ,
		item_id UUID REFERENCES items(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_list_open_item
		ON shopping_list_items(item_id) WHERE is_checked = false AND item_id IS NOT NULL`,
}

// Migrate applies the schema statements in order. Statements are idempotent
// so running this on every startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i, err)
		}
	}
	return nil
}
