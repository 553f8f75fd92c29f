package types

import "time"

type ApprovalActor struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// ApprovalDetails is the read-only record of a decision that already exists
// server-side.
type ApprovalDetails struct {
	WorkOrderID string        `json:"work_order_id"`
	Status      string        `json:"status"`
	ActionBy    ApprovalActor `json:"action_by"`
	ActionDate  time.Time     `json:"action_date"`
}
