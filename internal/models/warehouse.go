package models

import "time"

// TransactionType classifies a stock movement.
type TransactionType string

const (
	TransactionImport     TransactionType = "Import"
	TransactionExport     TransactionType = "Export"
	TransactionAdjustment TransactionType = "Adjustment"
)

// WarehouseItem is a stocked consumable or spare part.
type WarehouseItem struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	Quantity     int        `json:"quantity"`
	MinimumStock int        `json:"minimumStock,omitempty"`
	UnitPrice    float64    `json:"unitPrice,omitempty"`
	Location     string     `json:"location,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// LowStock reports whether the item is at or below its minimum stock level.
func (w WarehouseItem) LowStock() bool {
	return w.MinimumStock > 0 && w.Quantity <= w.MinimumStock
}

// WarehouseTransaction records a quantity change against an item.
type WarehouseTransaction struct {
	ID              string          `json:"id"`
	ItemID          string          `json:"itemId"`
	ItemName        string          `json:"itemName,omitempty"`
	Type            TransactionType `json:"type"`
	Quantity        int             `json:"quantity"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	PerformedBy     string          `json:"performedBy,omitempty"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}
