package model

import "time"

// MutationAction is the closed set of ledger operations on an item. Invalid
// actions are rejected at the parse boundary so the ledger only ever sees
// these four values.
type MutationAction string

const (
	ActionAdd    MutationAction = "ADD"
	ActionRemove MutationAction = "REMOVE"
	ActionUpdate MutationAction = "UPDATE"
	ActionAdjust MutationAction = "ADJUST"
)

func ParseMutationAction(s string) (MutationAction, bool) {
	switch MutationAction(s) {
	case ActionAdd, ActionRemove, ActionUpdate, ActionAdjust:
		return MutationAction(s), true
	}
	return "", false
}

type Item struct {
	BaseModel
	Name         string     `db:"name" json:"name"`
	Quantity     float64    `db:"quantity" json:"quantity"`
	Unit         string     `db:"unit" json:"unit"`
	MinimumStock *float64   `db:"minimum_stock" json:"minimum_stock"` // Nullable
	MaximumStock *float64   `db:"maximum_stock" json:"maximum_stock"` // Nullable
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date"`
	Barcode      *string    `db:"barcode" json:"barcode"`
	CategoryID   *string    `db:"category_id" json:"category_id"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at"`
	Version      int64      `db:"version" json:"version"` // Optimistic concurrency guard
}

type ItemHistory struct {
	ID          string         `db:"id" json:"id"`
	ItemID      string         `db:"item_id" json:"item_id"`
	Action      MutationAction `db:"action" json:"action"`
	Quantity    float64        `db:"quantity" json:"quantity"` // Magnitude of the change
	BeforeValue *float64       `db:"before_value" json:"before_value"`
	AfterValue  float64        `db:"after_value" json:"after_value"`
	Reason      *string        `db:"reason" json:"reason"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
