package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"foreman/internal/types"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken installs the bearer token used on authenticated calls. The
// session store owns token persistence; the client only carries the current
// value.
func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

func (c *Client) ClearToken() {
	c.token = ""
}

// Login exchanges credentials for a bearer token. The endpoint expects a
// form-encoded body.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", strings.TrimSpace(username))
	form.Set("password", password)
	var resp TokenResponse
	if err := c.doForm(ctx, "/auth/token", form, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return nil, errors.New("token response missing access_token")
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/users/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := forgotPasswordRequest{Email: strings.TrimSpace(email)}
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", req, false, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := resetPasswordRequest{Token: strings.TrimSpace(token), NewPassword: newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password", req, false, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", req, true, nil)
}

// ListWorkOrders fetches one page of work orders. Sort parameters are only
// sent when the request names a sort field.
func (c *Client) ListWorkOrders(ctx context.Context, req ListWorkOrdersRequest) (*WorkOrdersPage, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(req.Skip()))
	params.Set("limit", strconv.Itoa(req.PageSize))
	if search := strings.TrimSpace(req.Search); search != "" {
		params.Set("search", search)
	}
	for field, value := range req.Filters {
		field = strings.TrimSpace(field)
		if field == "" || strings.TrimSpace(value) == "" {
			continue
		}
		params.Set("filter_"+field, value)
	}
	if sortBy := strings.TrimSpace(req.SortBy); sortBy != "" {
		params.Set("sort_by", sortBy)
		direction := strings.TrimSpace(req.SortDirection)
		if direction == "" {
			direction = "asc"
		}
		params.Set("sort_direction", direction)
	}

	var resp workOrdersResponse
	path := "/work_orders?" + params.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return &WorkOrdersPage{Records: resp.Data, TotalCount: resp.Count}, nil
}

func (c *Client) FilterableColumns(ctx context.Context) ([]types.FilterableColumn, error) {
	var columns []types.FilterableColumn
	if err := c.doJSON(ctx, http.MethodGet, "/work_orders/columns/filterable", nil, true, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

func (c *Client) FilterValues(ctx context.Context, field string) ([]types.FilterValue, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, errors.New("filter field is required")
	}
	var values []types.FilterValue
	path := "/work_orders/filter_values/" + url.PathEscape(field)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (c *Client) SubmitApproval(ctx context.Context, workOrderID string, status types.ApprovalStatus) (*ApprovalResponse, error) {
	workOrderID = strings.TrimSpace(workOrderID)
	if workOrderID == "" {
		return nil, errors.New("work order id is required")
	}
	req := approvalRequest{WorkOrderID: workOrderID, ApprovalStatus: string(status)}
	var resp ApprovalResponse
	if err := c.doJSON(ctx, http.MethodPost, "/approval/", req, true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetApproval(ctx context.Context, workOrderID string) (*types.ApprovalDetails, error) {
	var details types.ApprovalDetails
	path := "/approval/" + url.PathEscape(strings.TrimSpace(workOrderID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetSummary fetches the AI-generated summaries for one work order. A 404 or
// an error field in the payload both mean "not ready"; callers receive the
// shared placeholder in every category, never a partial mix.
func (c *Client) GetSummary(ctx context.Context, workOrderID string) (*types.SummaryData, error) {
	var summary types.SummaryData
	path := "/summaries/" + url.PathEscape(strings.TrimSpace(workOrderID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &summary); err != nil {
		if IsNotFound(err) {
			return types.PlaceholderSummary(workOrderID), nil
		}
		return nil, err
	}
	if strings.TrimSpace(summary.Error) != "" {
		return types.PlaceholderSummary(workOrderID), nil
	}
	return &summary, nil
}

func (c *Client) GetFeedback(ctx context.Context, workOrderID string) (*types.FeedbackRecord, error) {
	var record types.FeedbackRecord
	path := "/feedback/" + url.PathEscape(strings.TrimSpace(workOrderID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &record); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// SubmitFeedback upserts one category's feedback for a work order and
// returns the updated record.
func (c *Client) SubmitFeedback(ctx context.Context, req SubmitFeedbackRequest) (*types.FeedbackRecord, error) {
	if strings.TrimSpace(req.WorkOrderID) == "" {
		return nil, errors.New("work order id is required")
	}
	var record types.FeedbackRecord
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", req, true, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DownloadURL requests a time-limited signed URL for a source document.
func (c *Client) DownloadURL(ctx context.Context, fileName string) (string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", errors.New("file name is required")
	}
	req := blobDownloadRequest{FileName: fileName}
	var resp blobDownloadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/blob/download", req, true, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.DownloadURL) == "" {
		return "", errors.New("download response missing url")
	}
	return resp.DownloadURL, nil
}

// FetchFile downloads a signed URL into dir and returns the saved path.
func (c *Client) FetchFile(ctx context.Context, signedURL, dir, fileName string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	dest := filepath.Join(dir, filepath.Base(strings.TrimSpace(fileName)))
	file, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(dest)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return dest, nil
}

func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if strings.TrimSpace(c.token) == "" {
			return ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var ErrNoToken = errors.New("not signed in")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func IsNotFound(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := payload.Error
	if message == "" {
		message = payload.Detail
	}
	if message == "" {
		message = resp.Status
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
