package app

import (
	"foreman/internal/client"
	"foreman/internal/types"
)

type sessionResumedMsg struct {
	authenticated bool
	user          *types.User
	err           error
}

type loginMsg struct {
	user *types.User
	err  error
}

type forgotPasswordMsg struct {
	email string
	err   error
}

type workOrdersMsg struct {
	seq   int
	page  *client.WorkOrdersPage
	err   error
}

type filterableColumnsMsg struct {
	columns []types.FilterableColumn
	err     error
}

type filterValuesMsg struct {
	field  string
	values []types.FilterValue
	err    error
}

type searchDebounceMsg struct {
	seq int
}

type approvalSubmittedMsg struct {
	workOrderID string
	status      types.ApprovalStatus
	resp        *client.ApprovalResponse
	err         error
}

type approvalDetailsMsg struct {
	workOrderID string
	details     *types.ApprovalDetails
	err         error
}

type summaryMsg struct {
	workOrderID string
	summary     *types.SummaryData
	err         error
}

type feedbackMsg struct {
	workOrderID string
	record      *types.FeedbackRecord
	err         error
}

type feedbackSubmittedMsg struct {
	workOrderID string
	category    types.SummaryCategory
	record      *types.FeedbackRecord
	err         error
}

type documentDownloadedMsg struct {
	fileName  string
	path      string
	signedURL string
	err       error
}

type assistantReplyMsg struct {
	workOrderID string
	text        string
}
