package models

import "time"

// EquipmentStatus is the lifecycle state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "Available"
	EquipmentInUse       EquipmentStatus = "InUse"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
	EquipmentBroken      EquipmentStatus = "Broken"
	EquipmentLost        EquipmentStatus = "Lost"
	EquipmentLiquidated  EquipmentStatus = "Liquidated"
)

// Equipment is a tracked asset.
type Equipment struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"categoryId,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
	SerialNumber  string          `json:"serialNumber,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Model         string          `json:"model,omitempty"`
	Status        EquipmentStatus `json:"status"`
	PurchaseDate  *time.Time      `json:"purchaseDate,omitempty"`
	PurchasePrice float64         `json:"purchasePrice,omitempty"`
	WarrantyUntil *time.Time      `json:"warrantyUntil,omitempty"`
	Location      string          `json:"location,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// AllowedActions lists the workflow actions offered for the current status.
func (e Equipment) AllowedActions() []Action {
	switch e.Status {
	case EquipmentAvailable:
		return []Action{ActionAssign, ActionSendToMaintenance, ActionLiquidate}
	case EquipmentInUse:
		return []Action{ActionSendToMaintenance}
	case EquipmentBroken, EquipmentLost:
		return []Action{ActionSendToMaintenance, ActionLiquidate}
	default:
		return nil
	}
}
