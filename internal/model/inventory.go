package model

import "time"

type InventoryCategory string

const (
	CategoryIngredient InventoryCategory = "INGREDIENT"
	CategoryCleaning   InventoryCategory = "CLEANING"
	CategoryHousehold  InventoryCategory = "HOUSEHOLD"
)

type InventoryStatus string

const (
	StockInStock    InventoryStatus = "IN_STOCK"
	StockRunningLow InventoryStatus = "RUNNING_LOW"
	StockOut        InventoryStatus = "OUT_OF_STOCK"
)

type InventoryItem struct {
	ID            int64             `json:"id"`
	FamilyID      string            `json:"family_id"`
	Name          string            `json:"name"`
	Image         string            `json:"image"`
	Category      InventoryCategory `json:"category"`
	Brand         string            `json:"brand,omitempty"`
	Store         string            `json:"store,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	UsageScenario string            `json:"usage_scenario,omitempty"`
	Status        InventoryStatus   `json:"status"`
	Comments      []Comment         `json:"comments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
