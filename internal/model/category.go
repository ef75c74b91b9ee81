package model

type Category struct {
	BaseModel
	Name      string  `db:"name" json:"name"`
	Icon      *string `db:"icon" json:"icon"`   // Nullable
	Color     *string `db:"color" json:"color"` // Nullable
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}
