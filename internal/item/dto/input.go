package dto

import (
	"time"

	"github.com/pantryos/inventory-service/internal/model"
)

type CreateItemInput struct {
	Name         string
	Quantity     float64
	Unit         string
	MinimumStock *float64
	MaximumStock *float64
	ExpiryDate   *time.Time
	Barcode      string
	CategoryID   string
}

type UpdateItemInput struct {
	ID           string
	Name         string
	Unit         string
	MinimumStock *float64
	MaximumStock *float64
	ExpiryDate   *time.Time
	Barcode      string
	CategoryID   string
	IsActive     bool
	Reason       string
}

type MutateItemInput struct {
	ItemID   string
	Action   model.MutationAction
	Quantity float64
	Reason   string
}
