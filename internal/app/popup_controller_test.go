package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"foreman/internal/types"
)

func testWorkOrder(id, status string) *types.WorkOrder {
	return &types.WorkOrder{
		ID:             id,
		Description:    "Replace coolant pump",
		TypeID:         "MECH",
		ServiceLevel:   2,
		ApprovalStatus: status,
	}
}

func TestPopupCanDecideGatesPerAction(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	if !c.CanDecide(types.ApprovalStatusApproved) || !c.CanDecide(types.ApprovalStatusRejected) {
		t.Fatalf("expected pending work order to allow either decision")
	}
	c.SetSubmitting(true)
	if c.CanDecide(types.ApprovalStatusApproved) || c.CanDecide(types.ApprovalStatusRejected) {
		t.Fatalf("expected in-flight submission to block further decisions")
	}
	c.SetSubmitting(false)
	c.ApplyDecision(types.ApprovalStatusApproved)
	if c.CanDecide(types.ApprovalStatusApproved) {
		t.Fatalf("expected repeat approval to be blocked")
	}
	if !c.CanDecide(types.ApprovalStatusRejected) {
		t.Fatalf("expected reject to remain available after approval")
	}
	if c.WorkOrder().ApprovalStatus != "APPROVED" {
		t.Fatalf("expected optimistic status update, got %q", c.WorkOrder().ApprovalStatus)
	}
	c.ApplyDecision(types.ApprovalStatusRejected)
	if c.CanDecide(types.ApprovalStatusRejected) {
		t.Fatalf("expected repeat rejection to be blocked")
	}
	if !c.CanDecide(types.ApprovalStatusApproved) {
		t.Fatalf("expected approve to remain available after rejection")
	}
}

func TestPopupCanDecideToleratesDecoratedStatus(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0008", "Pending review"))
	if !c.CanDecide(types.ApprovalStatusApproved) {
		t.Fatalf("expected decorated pending status to allow a decision")
	}
	c.Open(testWorkOrder("WO-0009", "approved by manager"))
	if c.CanDecide(types.ApprovalStatusApproved) {
		t.Fatalf("expected decorated approved status to block approval")
	}
	if !c.CanDecide(types.ApprovalStatusRejected) {
		t.Fatalf("expected decorated approved status to leave reject available")
	}
}

func TestPopupApprovalViewGatesButtonsOnAcks(t *testing.T) {
	c := NewPopupController(100, 30)
	acks := NewAckStore()
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	c.SetTab(popupTabApproval)

	view := xansi.Strip(c.View(acks))
	if !strings.Contains(view, "check all three points") {
		t.Fatalf("expected gated hint with no acks, got: %s", view)
	}

	acks.Toggle("WO-0007", ackTechnical)
	acks.Toggle("WO-0007", ackServiceLevel)
	acks.Toggle("WO-0007", ackCustomerCosts)
	view = xansi.Strip(c.View(acks))
	if !strings.Contains(view, "a approve") {
		t.Fatalf("expected enabled decision hint with all acks, got: %s", view)
	}
}

func TestPopupApprovalViewHidesOnlyMatchingAction(t *testing.T) {
	c := NewPopupController(100, 30)
	acks := NewAckStore()
	c.Open(testWorkOrder("WO-0007", "APPROVED"))
	c.SetTab(popupTabApproval)
	acks.Toggle("WO-0007", ackTechnical)
	acks.Toggle("WO-0007", ackServiceLevel)
	acks.Toggle("WO-0007", ackCustomerCosts)

	view := xansi.Strip(c.View(acks))
	if strings.Contains(view, "[ Approve ]") {
		t.Fatalf("expected approve button hidden for an approved work order, got: %s", view)
	}
	if !strings.Contains(view, "[ Reject ]") {
		t.Fatalf("expected reject button shown for an approved work order, got: %s", view)
	}
	if !strings.Contains(view, "r reject") {
		t.Fatalf("expected reject hint for an approved work order, got: %s", view)
	}
}

func TestPopupSummaryFallsBackToPlaceholder(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	c.SetTab(popupTabSummary)
	c.SetSummary(nil)

	view := xansi.Strip(c.View(NewAckStore()))
	if !strings.Contains(view, "Summary not ready yet") {
		t.Fatalf("expected placeholder text, got: %s", view)
	}
}

func TestPopupCategoryNavigationAndDocuments(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	c.SetSummary(&types.SummaryData{
		SafetyRulesSummary:      "Wear PPE.",
		OperatingExperienceText: "Past incidents noted.",
		OperatingDocuments: []types.SourceDocument{
			{FileName: "oe-001.pdf", Title: "OE Report 1"},
			{FileName: "oe-002.pdf", Title: "OE Report 2"},
		},
	})

	if c.Category() != types.CategorySafety {
		t.Fatalf("expected first category safety, got %q", c.Category())
	}
	if _, ok := c.CurrentDocument(); ok {
		t.Fatalf("expected no documents for safety category")
	}

	c.MoveCategory(1)
	if c.Category() != types.CategoryOperatingExperience {
		t.Fatalf("expected operating category, got %q", c.Category())
	}
	doc, ok := c.CurrentDocument()
	if !ok || doc.FileName != "oe-001.pdf" {
		t.Fatalf("expected first document, got %v ok=%v", doc, ok)
	}
	c.MoveDoc(1)
	doc, _ = c.CurrentDocument()
	if doc.FileName != "oe-002.pdf" {
		t.Fatalf("expected second document, got %v", doc)
	}
	c.MoveDoc(5)
	doc, _ = c.CurrentDocument()
	if doc.FileName != "oe-002.pdf" {
		t.Fatalf("expected cursor clamped to last document, got %v", doc)
	}
}

func TestPopupVotePendingThenResolved(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))

	c.MarkVotePending(types.CategorySafety, types.FeedbackNegative)
	if got := c.currentVote(types.CategorySafety); got != types.FeedbackNegative {
		t.Fatalf("expected pending vote shown, got %q", got)
	}

	record := &types.FeedbackRecord{
		WorkOrderID: "WO-0007",
		Safety:      &types.CategoryFeedback{Feedback: types.FeedbackNegative, Comment: "too generic"},
	}
	c.ResolveVote(types.CategorySafety, record)
	if got := c.currentVote(types.CategorySafety); got != types.FeedbackNegative {
		t.Fatalf("expected resolved vote, got %q", got)
	}

	c.MarkVotePending(types.CategorySafety, types.FeedbackPositive)
	c.VoteFailed(types.CategorySafety)
	if got := c.currentVote(types.CategorySafety); got != types.FeedbackNegative {
		t.Fatalf("expected failed vote to fall back to server record, got %q", got)
	}
}

func TestPopupCommentLabelReflectsExistingFeedback(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	c.SetTab(popupTabSummary)

	c.StartComment()
	if view := xansi.Strip(c.View(NewAckStore())); !strings.Contains(view, "enter Submit") {
		t.Fatalf("expected Submit label without prior feedback, got: %s", view)
	}
	c.CancelComment()

	c.SetFeedback(&types.FeedbackRecord{
		WorkOrderID: "WO-0007",
		Safety:      &types.CategoryFeedback{Feedback: types.FeedbackPositive, Comment: "clear"},
	})
	c.StartComment()
	if view := xansi.Strip(c.View(NewAckStore())); !strings.Contains(view, "enter Update") {
		t.Fatalf("expected Update label with existing feedback, got: %s", view)
	}
	if got := c.comment.Value(); got != "clear" {
		t.Fatalf("expected comment prefilled, got %q", got)
	}
}

func TestPopupCloseReturnsWorkOrderID(t *testing.T) {
	c := NewPopupController(100, 30)
	c.Open(testWorkOrder("WO-0007", "PENDING"))
	if id := c.Close(); id != "WO-0007" {
		t.Fatalf("expected close to return id, got %q", id)
	}
	if c.IsOpen() {
		t.Fatalf("expected popup closed")
	}
}
