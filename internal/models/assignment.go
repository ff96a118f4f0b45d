package models

import "time"

// AssignmentStatus tracks an equipment hand-out.
type AssignmentStatus string

const (
	AssignmentAssigned AssignmentStatus = "Assigned"
	AssignmentReturned AssignmentStatus = "Returned"
	AssignmentOverdue  AssignmentStatus = "Overdue"
)

// Assignment binds a piece of equipment to a user for a period.
type Assignment struct {
	ID                string           `json:"id"`
	EquipmentID       string           `json:"equipmentId"`
	EquipmentName     string           `json:"equipmentName,omitempty"`
	UserID            string           `json:"userId"`
	UserName          string           `json:"userName,omitempty"`
	Status            AssignmentStatus `json:"status"`
	AssignedAt        *time.Time       `json:"assignedAt,omitempty"`
	ExpectedReturnAt  *time.Time       `json:"expectedReturnAt,omitempty"`
	ReturnedAt        *time.Time       `json:"returnedAt,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	ReturnNotes       string           `json:"returnNotes,omitempty"`
	ReturnedCondition string           `json:"condition,omitempty"`
}

// AllowedActions lists the workflow actions offered for the current status.
func (a Assignment) AllowedActions() []Action {
	switch a.Status {
	case AssignmentAssigned, AssignmentOverdue:
		return []Action{ActionReturn}
	default:
		return nil
	}
}
