package app

import (
	"context"

	"foreman/internal/client"
	"foreman/internal/types"
)

// API bundles everything the UI needs from the server.
type API interface {
	AuthAPI
	WorkOrderAPI
	ApprovalAPI
	SummaryAPI
	BlobAPI
}

type AuthAPI interface {
	ForgotPassword(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

type WorkOrderAPI interface {
	ListWorkOrders(ctx context.Context, req client.ListWorkOrdersRequest) (*client.WorkOrdersPage, error)
	FilterableColumns(ctx context.Context) ([]types.FilterableColumn, error)
	FilterValues(ctx context.Context, field string) ([]types.FilterValue, error)
}

type ApprovalAPI interface {
	SubmitApproval(ctx context.Context, workOrderID string, status types.ApprovalStatus) (*client.ApprovalResponse, error)
	GetApproval(ctx context.Context, workOrderID string) (*types.ApprovalDetails, error)
}

type SummaryAPI interface {
	GetSummary(ctx context.Context, workOrderID string) (*types.SummaryData, error)
	GetFeedback(ctx context.Context, workOrderID string) (*types.FeedbackRecord, error)
	SubmitFeedback(ctx context.Context, req client.SubmitFeedbackRequest) (*types.FeedbackRecord, error)
}

type BlobAPI interface {
	DownloadURL(ctx context.Context, fileName string) (string, error)
	FetchFile(ctx context.Context, signedURL, dir, fileName string) (string, error)
}

type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(client *client.Client) *ClientAPI {
	return &ClientAPI{client: client}
}

func (a *ClientAPI) ForgotPassword(ctx context.Context, email string) error {
	return a.client.ForgotPassword(ctx, email)
}

func (a *ClientAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return a.client.ChangePassword(ctx, oldPassword, newPassword)
}

func (a *ClientAPI) ListWorkOrders(ctx context.Context, req client.ListWorkOrdersRequest) (*client.WorkOrdersPage, error) {
	return a.client.ListWorkOrders(ctx, req)
}

func (a *ClientAPI) FilterableColumns(ctx context.Context) ([]types.FilterableColumn, error) {
	return a.client.FilterableColumns(ctx)
}

func (a *ClientAPI) FilterValues(ctx context.Context, field string) ([]types.FilterValue, error) {
	return a.client.FilterValues(ctx, field)
}

func (a *ClientAPI) SubmitApproval(ctx context.Context, workOrderID string, status types.ApprovalStatus) (*client.ApprovalResponse, error) {
	return a.client.SubmitApproval(ctx, workOrderID, status)
}

func (a *ClientAPI) GetApproval(ctx context.Context, workOrderID string) (*types.ApprovalDetails, error) {
	return a.client.GetApproval(ctx, workOrderID)
}

func (a *ClientAPI) GetSummary(ctx context.Context, workOrderID string) (*types.SummaryData, error) {
	return a.client.GetSummary(ctx, workOrderID)
}

func (a *ClientAPI) GetFeedback(ctx context.Context, workOrderID string) (*types.FeedbackRecord, error) {
	return a.client.GetFeedback(ctx, workOrderID)
}

func (a *ClientAPI) SubmitFeedback(ctx context.Context, req client.SubmitFeedbackRequest) (*types.FeedbackRecord, error) {
	return a.client.SubmitFeedback(ctx, req)
}

func (a *ClientAPI) DownloadURL(ctx context.Context, fileName string) (string, error) {
	return a.client.DownloadURL(ctx, fileName)
}

func (a *ClientAPI) FetchFile(ctx context.Context, signedURL, dir, fileName string) (string, error) {
	return a.client.FetchFile(ctx, signedURL, dir, fileName)
}
