package models

import "time"

// PolicyEffect is the outcome a matching policy produces.
type PolicyEffect string

const (
	PolicyAllow PolicyEffect = "Allow"
	PolicyDeny  PolicyEffect = "Deny"
)

// Policy is a PBAC rule. Conditions is an opaque JSON document that is only
// checked for well-formedness client-side.
type Policy struct {
	PolicyID    string       `json:"policyId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Resource    string       `json:"resource"`
	Action      string       `json:"action"`
	Effect      PolicyEffect `json:"effect"`
	Priority    int          `json:"priority"`
	Conditions  string       `json:"conditions,omitempty"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}
