package client

import "foreman/internal/types"

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ListWorkOrdersRequest struct {
	Page          int
	PageSize      int
	Search        string
	Filters       map[string]string
	SortBy        string
	SortDirection string
}

// Skip converts the one-based page into the zero-based record offset the
// server expects.
func (r ListWorkOrdersRequest) Skip() int {
	if r.Page <= 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}

type WorkOrdersPage struct {
	Records    []*types.WorkOrder
	TotalCount int
}

type workOrdersResponse struct {
	Data  []*types.WorkOrder `json:"data"`
	Count int                `json:"count"`
	Meta  struct {
		Skip  int `json:"skip"`
		Limit int `json:"limit"`
	} `json:"meta"`
}

type approvalRequest struct {
	WorkOrderID    string `json:"workorder_id"`
	ApprovalStatus string `json:"approval_status"`
}

type ApprovalResponse struct {
	Message     string `json:"message"`
	WorkOrderID string `json:"work_order_id"`
	Status      string `json:"status"`
}

type SubmitFeedbackRequest struct {
	WorkOrderID string                `json:"work_order_id"`
	Category    types.SummaryCategory `json:"category"`
	Feedback    types.FeedbackVote    `json:"feedback"`
	Comment     string                `json:"comment,omitempty"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type blobDownloadRequest struct {
	FileName string `json:"file_name"`
}

type blobDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}
