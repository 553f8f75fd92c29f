package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"foreman/internal/assistant"
	"foreman/internal/client"
	"foreman/internal/session"
	"foreman/internal/types"
)

func resumeSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		err := store.Resume(ctx)
		return sessionResumedMsg{authenticated: store.IsAuthenticated(), user: store.User(), err: err}
	}
}

func loginCmd(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Login(ctx, username, password); err != nil {
			return loginMsg{err: err}
		}
		return loginMsg{user: store.User()}
	}
}

func forgotPasswordCmd(api AuthAPI, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := api.ForgotPassword(ctx, email)
		return forgotPasswordMsg{email: email, err: err}
	}
}

func fetchWorkOrdersCmd(api WorkOrderAPI, req client.ListWorkOrdersRequest, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		page, err := api.ListWorkOrders(ctx, req)
		return workOrdersMsg{seq: seq, page: page, err: err}
	}
}

func fetchFilterableColumnsCmd(api WorkOrderAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		columns, err := api.FilterableColumns(ctx)
		return filterableColumnsMsg{columns: columns, err: err}
	}
}

func fetchFilterValuesCmd(api WorkOrderAPI, field string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		values, err := api.FilterValues(ctx, field)
		return filterValuesMsg{field: field, values: values, err: err}
	}
}

func debounceSearchCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func submitApprovalCmd(api ApprovalAPI, workOrderID string, status types.ApprovalStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		resp, err := api.SubmitApproval(ctx, workOrderID, status)
		return approvalSubmittedMsg{workOrderID: workOrderID, status: status, resp: resp, err: err}
	}
}

func fetchApprovalCmd(api ApprovalAPI, workOrderID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		details, err := api.GetApproval(ctx, workOrderID)
		return approvalDetailsMsg{workOrderID: workOrderID, details: details, err: err}
	}
}

func fetchSummaryCmd(api SummaryAPI, workOrderID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		summary, err := api.GetSummary(ctx, workOrderID)
		return summaryMsg{workOrderID: workOrderID, summary: summary, err: err}
	}
}

func fetchFeedbackCmd(api SummaryAPI, workOrderID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()
		record, err := api.GetFeedback(ctx, workOrderID)
		return feedbackMsg{workOrderID: workOrderID, record: record, err: err}
	}
}

func submitFeedbackCmd(api SummaryAPI, req client.SubmitFeedbackRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		record, err := api.SubmitFeedback(ctx, req)
		return feedbackSubmittedMsg{workOrderID: req.WorkOrderID, category: req.Category, record: record, err: err}
	}
}

func downloadDocumentCmd(api BlobAPI, fileName, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		signedURL, err := api.DownloadURL(ctx, fileName)
		if err != nil {
			return documentDownloadedMsg{fileName: fileName, err: err}
		}
		path, err := api.FetchFile(ctx, signedURL, dir, fileName)
		return documentDownloadedMsg{fileName: fileName, path: path, signedURL: signedURL, err: err}
	}
}

// assistantReplyCmd delays the canned answer briefly so the dialog reads
// like a response rather than an echo.
func assistantReplyCmd(workOrderID string, topic assistant.Topic, input string, ctx assistant.Context) tea.Cmd {
	reply := assistant.Respond(topic, input, ctx)
	return tea.Tick(800*time.Millisecond, func(time.Time) tea.Msg {
		return assistantReplyMsg{workOrderID: workOrderID, text: reply}
	})
}
