package model

import "time"

// ShoppingListItem is a replenishment suggestion, either generated from a
// LOW_STOCK transition or added manually (ItemID nil). Checked rows are
// terminal.
type ShoppingListItem struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Quantity  float64    `db:"quantity" json:"quantity"`
	Unit      string     `db:"unit" json:"unit"`
	Priority  int        `db:"priority" json:"priority"`
	Notes     *string    `db:"notes" json:"notes"`
	IsChecked bool       `db:"is_checked" json:"is_checked"`
	CheckedAt *time.Time `db:"checked_at" json:"checked_at"`
	ItemID    *string    `db:"item_id" json:"item_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
