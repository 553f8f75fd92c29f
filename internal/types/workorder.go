package types

import (
	"strings"
	"time"
)

type ApprovalStatus string

const (
	ApprovalStatusPending   ApprovalStatus = "PENDING"
	ApprovalStatusApproved  ApprovalStatus = "APPROVED"
	ApprovalStatusRejected  ApprovalStatus = "REJECTED"
	ApprovalStatusCancelled ApprovalStatus = "CANCELLED"
	ApprovalStatusFinished  ApprovalStatus = "FINISHED"
)

type WorkOrder struct {
	ID                 string     `json:"wo_id"`
	Description        string     `json:"description"`
	ResponsibleGroupID string     `json:"responsible_group_id,omitempty"`
	LifecycleState     string     `json:"lifecycle_state,omitempty"`
	TypeID             string     `json:"type_id,omitempty"`
	ExpectedStart      *time.Time `json:"expected_start,omitempty"`
	ExpectedEnd        *time.Time `json:"expected_end,omitempty"`
	ScheduledStart     *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd       *time.Time `json:"scheduled_end,omitempty"`
	ActualStart        *time.Time `json:"actual_start,omitempty"`
	ActualEnd          *time.Time `json:"actual_end,omitempty"`
	CostType           string     `json:"cost_type,omitempty"`
	ServiceLevel       int        `json:"service_level,omitempty"`
	Active             bool       `json:"is_active"`
	ApprovalStatus     string     `json:"approval_status"`
	SummaryGenerated   bool       `json:"is_summary_generated"`
}

// StatusMatches reports whether a server-provided status string denotes the
// given status. Servers have been observed returning variant casings and
// decorated forms ("approved", "Approved by manager"), so the comparison is a
// case-insensitive substring match.
func StatusMatches(raw string, status ApprovalStatus) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return false
	}
	return strings.Contains(raw, strings.ToLower(string(status)))
}

func (w *WorkOrder) StatusIs(status ApprovalStatus) bool {
	if w == nil {
		return false
	}
	return StatusMatches(w.ApprovalStatus, status)
}

// PageCount returns the number of pages needed for count records, at least 1.
func PageCount(count, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

type FilterableColumn struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type FilterValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}
