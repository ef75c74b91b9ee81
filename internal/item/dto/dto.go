package dto

import "github.com/pantryos/inventory-service/internal/model"

type ItemFilters struct {
	CategoryID string
	LowStock   bool // quantity <= minimum_stock where a minimum is set
	Search     string
	Page       int
	PageSize   int
}

type MutationResult struct {
	Item    *model.Item        `json:"item"`
	History *model.ItemHistory `json:"history"`
}
