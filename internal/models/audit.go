package models

import "time"

// AuditStatus is the lifecycle of an inventory audit.
type AuditStatus string

const (
	AuditPlanned    AuditStatus = "Planned"
	AuditInProgress AuditStatus = "InProgress"
	AuditCompleted  AuditStatus = "Completed"
	AuditCancelled  AuditStatus = "Cancelled"
)

// Audit is an inventory check over a location or set of equipment.
type Audit struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Status      AuditStatus   `json:"status"`
	AuditorID   string        `json:"auditorId,omitempty"`
	AuditorName string        `json:"auditorName,omitempty"`
	ScheduledAt *time.Time    `json:"scheduledAt,omitempty"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Findings    string        `json:"findings,omitempty"`
	Records     []AuditRecord `json:"records,omitempty"`
}

// AuditRecord is one observation made during an audit.
type AuditRecord struct {
	ID             string          `json:"id"`
	AuditID        string          `json:"auditId"`
	EquipmentID    string          `json:"equipmentId"`
	EquipmentName  string          `json:"equipmentName,omitempty"`
	ExpectedStatus EquipmentStatus `json:"expectedStatus,omitempty"`
	ActualStatus   EquipmentStatus `json:"actualStatus"`
	IsFound        bool            `json:"isFound"`
	Notes          string          `json:"notes,omitempty"`
	CheckedAt      *time.Time      `json:"checkedAt,omitempty"`
}

// Discrepancy reports whether the record contradicts the expected state.
func (r AuditRecord) Discrepancy() bool {
	if !r.IsFound {
		return true
	}
	return r.ExpectedStatus != "" && r.ExpectedStatus != r.ActualStatus
}

// AllowedActions lists the workflow actions offered for the current status.
func (a Audit) AllowedActions() []Action {
	switch a.Status {
	case AuditPlanned:
		return []Action{ActionStart, ActionCancel}
	case AuditInProgress:
		return []Action{ActionAddRecord, ActionComplete, ActionCancel}
	default:
		return nil
	}
}
