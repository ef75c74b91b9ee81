package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pantryos/inventory-service/internal/alert"
	"github.com/pantryos/inventory-service/internal/model"
)

type PGRepository struct {
	db sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db}
}

func (r *PGRepository) WithTx(tx *sqlx.Tx) alert.Repository {
	return &PGRepository{db: tx}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Alert, error) {
	var a model.Alert
	query := `SELECT * FROM alerts WHERE id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, r.db, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) FindByItemAndType(ctx context.Context, itemID string, alertType model.AlertType) (*model.Alert, error) {
	var a model.Alert
	query := `SELECT * FROM alerts WHERE item_id = $1 AND type = $2 LIMIT 1`
	err := sqlx.GetContext(ctx, r.db, &a, query, itemID, string(alertType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) ListByItem(ctx context.Context, itemID string) ([]model.Alert, error) {
	var alerts []model.Alert
	query := `SELECT * FROM alerts WHERE item_id = $1 ORDER BY type ASC`
	err := sqlx.SelectContext(ctx, r.db, &alerts, query, itemID)
	return alerts, err
}

func (r *PGRepository) ListActive(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	query := `
        SELECT * FROM alerts
        WHERE firing = true AND is_enabled = true
        ORDER BY last_triggered_at DESC NULLS LAST
    `
	err := sqlx.SelectContext(ctx, r.db, &alerts, query)
	return alerts, err
}

func (r *PGRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `
        INSERT INTO alerts (
            id, item_id, type, threshold_value, is_enabled, firing,
            last_triggered_at, acknowledged_at, created_at, updated_at
        )
        VALUES (
            :id, :item_id, :type, :threshold_value, :is_enabled, :firing,
            :last_triggered_at, :acknowledged_at, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, a)
	return err
}

func (r *PGRepository) Update(ctx context.Context, a *model.Alert) error {
	query := `
        UPDATE alerts SET
            threshold_value = :threshold_value,
            is_enabled = :is_enabled,
            firing = :firing,
            last_triggered_at = :last_triggered_at,
            acknowledged_at = :acknowledged_at,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, r.db, query, a)
	return err
}
