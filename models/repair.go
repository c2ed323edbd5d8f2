package models

// Repair job states. The set is fixed; status selectors render exactly
// these four values.
const (
	StatusReceived     = "Received"
	StatusInProgress   = "In Progress"
	StatusWaitingParts = "Waiting for Parts"
	StatusCompleted    = "Completed"
)

// RepairStatuses lists the valid states in display order.
var RepairStatuses = []string{
	StatusReceived,
	StatusInProgress,
	StatusWaitingParts,
	StatusCompleted,
}

// IsValidStatus reports whether s is one of the four repair states.
func IsValidStatus(s string) bool {
	for _, status := range RepairStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Repair represents a repair job. CustomerID references a Customer but
// is not enforced; a dangling reference renders as a placeholder.
type Repair struct {
	ID         int    `json:"id"`
	CustomerID int    `json:"customer_id"`
	Vehicle    string `json:"vehicle"`
	Issue      string `json:"issue"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updated_at"` // refreshed on every status change
}
