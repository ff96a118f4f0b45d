package models

// Action names a workflow transition a record may offer.
type Action string

const (
	ActionAssign            Action = "Assign"
	ActionReturn            Action = "Return"
	ActionStart             Action = "Start"
	ActionComplete          Action = "Complete"
	ActionCancel            Action = "Cancel"
	ActionApprove           Action = "Approve"
	ActionReject            Action = "Reject"
	ActionAddRecord         Action = "AddRecord"
	ActionSendToMaintenance Action = "SendToMaintenance"
	ActionLiquidate         Action = "Liquidate"
)

// HasAction reports whether a is present in actions.
func HasAction(actions []Action, a Action) bool {
	for _, candidate := range actions {
		if candidate == a {
			return true
		}
	}
	return false
}
