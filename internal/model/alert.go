package model

import "time"

// AlertType is the closed set of threshold alert kinds.
type AlertType string

const (
	AlertLowStock  AlertType = "LOW_STOCK"
	AlertExpiry    AlertType = "EXPIRY"
	AlertOverstock AlertType = "OVERSTOCK"
)

func AlertTypes() []AlertType {
	return []AlertType{AlertLowStock, AlertExpiry, AlertOverstock}
}

// Alert is the derived threshold state for one (item, type) pair. Rows are
// created lazily on the first evaluation that fires and updated on every
// transition afterwards; Firing is persisted so edge detection survives
// restarts.
type Alert struct {
	BaseModel
	ItemID          string     `db:"item_id" json:"item_id"`
	Type            AlertType  `db:"type" json:"type"`
	ThresholdValue  *float64   `db:"threshold_value" json:"threshold_value"` // Overrides the item's own threshold
	IsEnabled       bool       `db:"is_enabled" json:"is_enabled"`
	Firing          bool       `db:"firing" json:"firing"`
	LastTriggeredAt *time.Time `db:"last_triggered_at" json:"last_triggered_at"`
	AcknowledgedAt  *time.Time `db:"acknowledged_at" json:"acknowledged_at"`
}
