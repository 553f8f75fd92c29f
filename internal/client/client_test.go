package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foreman/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := New(server.URL, 2*time.Second)
	c.SetToken("test-token")
	return c
}

func TestListWorkOrdersBuildsQueryParameters(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"wo_id":"WO-0001","approval_status":"PENDING"}],"count":237,"meta":{"skip":100,"limit":50}}`))
	})

	page, err := c.ListWorkOrders(context.Background(), ListWorkOrdersRequest{
		Page:          3,
		PageSize:      50,
		Search:        "pump",
		Filters:       map[string]string{"type_id": "Repair", "cost_type": ""},
		SortBy:        "expected_start",
		SortDirection: "desc",
	})
	if err != nil {
		t.Fatalf("ListWorkOrders: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
	expect := map[string]string{
		"skip":           "100",
		"limit":          "50",
		"search":         "pump",
		"filter_type_id": "Repair",
		"sort_by":        "expected_start",
		"sort_direction": "desc",
	}
	for key, want := range expect {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Fatalf("query %s = %v, want %q", key, got, want)
		}
	}
	if _, ok := gotQuery["filter_cost_type"]; ok {
		t.Fatalf("empty filter value must not be sent")
	}
	if page.TotalCount != 237 || len(page.Records) != 1 || page.Records[0].ID != "WO-0001" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestListWorkOrdersOmitsSortUntilRequested(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[],"count":0}`))
	})
	if _, err := c.ListWorkOrders(context.Background(), ListWorkOrdersRequest{Page: 1, PageSize: 50}); err != nil {
		t.Fatalf("ListWorkOrders: %v", err)
	}
	if _, ok := gotQuery["sort_by"]; ok {
		t.Fatalf("sort_by must not be sent without an explicit sort")
	}
	if got := gotQuery["skip"]; len(got) != 1 || got[0] != "0" {
		t.Fatalf("expected skip=0, got %v", got)
	}
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "reviewer" || r.PostForm.Get("password") != "secret" {
			t.Errorf("unexpected form values %v", r.PostForm)
		}
		_, _ = w.Write([]byte(`{"access_token":"abc123","token_type":"bearer"}`))
	})
	resp, err := c.Login(context.Background(), "reviewer", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != "abc123" {
		t.Fatalf("unexpected token %q", resp.AccessToken)
	}
}

func TestLoginRejectsEmptyTokenResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	})
	if _, err := c.Login(context.Background(), "reviewer", "secret"); err == nil {
		t.Fatalf("expected error for missing access_token")
	}
}

func TestGetSummaryNotFoundReturnsPlaceholderForAllCategories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	})
	summary, err := c.GetSummary(context.Background(), "WO-0404")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	for _, category := range types.SummaryCategories {
		if got := summary.Text(category); got != types.SummaryPlaceholder {
			t.Fatalf("category %s = %q, want placeholder", category, got)
		}
	}
}

func TestGetSummaryErrorPayloadTreatedAsNotReady(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"safety_rules_summary":"partial text","error":"generation failed"}`))
	})
	summary, err := c.GetSummary(context.Background(), "WO-0007")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.SafetyRulesSummary != types.SummaryPlaceholder {
		t.Fatalf("error payload must not leak partial summaries, got %q", summary.SafetyRulesSummary)
	}
}

func TestGetFeedbackNotFoundReturnsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	})
	record, err := c.GetFeedback(context.Background(), "WO-0009")
	if err != nil {
		t.Fatalf("GetFeedback: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestSubmitApprovalPostsDecision(t *testing.T) {
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/approval/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"message":"ok","work_order_id":"WO-0007","status":"APPROVED"}`))
	})
	resp, err := c.SubmitApproval(context.Background(), "WO-0007", types.ApprovalStatusApproved)
	if err != nil {
		t.Fatalf("SubmitApproval: %v", err)
	}
	if resp.WorkOrderID != "WO-0007" || resp.Status != "APPROVED" {
		t.Fatalf("unexpected response %+v", resp)
	}
	want := `{"workorder_id":"WO-0007","approval_status":"APPROVED"}`
	if gotBody != want {
		t.Fatalf("body = %s, want %s", gotBody, want)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	})
	_, err := c.FilterableColumns(context.Background())
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "upstream unavailable" {
		t.Fatalf("unexpected APIError %+v", apiErr)
	}
}

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	c := New("http://127.0.0.1:0", time.Second)
	if _, err := c.Me(context.Background()); err != ErrNoToken {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}
