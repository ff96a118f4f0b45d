package models

import "time"

// MaintenanceStatus is the lifecycle of a maintenance ticket.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "Pending"
	MaintenanceAssigned   MaintenanceStatus = "Assigned"
	MaintenanceInProgress MaintenanceStatus = "InProgress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
	MaintenanceCancelled  MaintenanceStatus = "Cancelled"
)

// Maintenance is a repair or servicing ticket for a piece of equipment.
type Maintenance struct {
	ID                 string            `json:"id"`
	EquipmentID        string            `json:"equipmentId"`
	EquipmentName      string            `json:"equipmentName,omitempty"`
	Title              string            `json:"title,omitempty"`
	Description        string            `json:"description"`
	Priority           string            `json:"priority,omitempty"`
	Status             MaintenanceStatus `json:"status"`
	TechnicianID       string            `json:"technicianId,omitempty"`
	TechnicianName     string            `json:"technicianName,omitempty"`
	ReportedBy         string            `json:"reportedBy,omitempty"`
	Cost               float64           `json:"cost,omitempty"`
	CompletionNotes    string            `json:"completionNotes,omitempty"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	ScheduledAt        *time.Time        `json:"scheduledAt,omitempty"`
	StartedAt          *time.Time        `json:"startedAt,omitempty"`
	CompletedAt        *time.Time        `json:"completedAt,omitempty"`
	CreatedAt          *time.Time        `json:"createdAt,omitempty"`
}

// AllowedActions lists the workflow actions offered for the current status.
func (m Maintenance) AllowedActions() []Action {
	switch m.Status {
	case MaintenancePending:
		return []Action{ActionAssign, ActionCancel}
	case MaintenanceAssigned:
		return []Action{ActionStart, ActionCancel}
	case MaintenanceInProgress:
		return []Action{ActionComplete, ActionCancel}
	default:
		return nil
	}
}
