package models

import "time"

// Liquidation is a request to retire a piece of equipment. IsApproved is nil
// while the request awaits a decision.
type Liquidation struct {
	ID               string     `json:"id"`
	EquipmentID      string     `json:"equipmentId"`
	EquipmentName    string     `json:"equipmentName,omitempty"`
	Reason           string     `json:"reason"`
	EstimatedValue   float64    `json:"estimatedValue,omitempty"`
	LiquidationValue float64    `json:"liquidationValue,omitempty"`
	IsApproved       *bool      `json:"isApproved"`
	ApprovalNotes    string     `json:"approvalNotes,omitempty"`
	RejectionReason  string     `json:"rejectionReason,omitempty"`
	RequestedBy      string     `json:"requestedBy,omitempty"`
	ApprovedBy       string     `json:"approvedBy,omitempty"`
	RequestedAt      *time.Time `json:"requestedAt,omitempty"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
}

// Pending reports whether the liquidation still awaits approval or rejection.
func (l Liquidation) Pending() bool {
	return l.IsApproved == nil
}

// AllowedActions lists the workflow actions offered for the current state.
func (l Liquidation) AllowedActions() []Action {
	if l.Pending() {
		return []Action{ActionApprove, ActionReject}
	}
	return nil
}
