package types

import "testing"

func TestStatusMatchesIsCaseInsensitiveSubstring(t *testing.T) {
	cases := []struct {
		raw    string
		status ApprovalStatus
		want   bool
	}{
		{"APPROVED", ApprovalStatusApproved, true},
		{"approved", ApprovalStatusApproved, true},
		{"Approved by manager", ApprovalStatusApproved, true},
		{" pending review ", ApprovalStatusPending, true},
		{"REJECTED", ApprovalStatusApproved, false},
		{"", ApprovalStatusPending, false},
		{"cancelled", ApprovalStatusCancelled, true},
	}
	for _, tc := range cases {
		if got := StatusMatches(tc.raw, tc.status); got != tc.want {
			t.Fatalf("StatusMatches(%q, %q) = %v, want %v", tc.raw, tc.status, got, tc.want)
		}
	}
}

func TestWorkOrderStatusIs(t *testing.T) {
	wo := &WorkOrder{ID: "WO-0001", ApprovalStatus: "Approved"}
	if !wo.StatusIs(ApprovalStatusApproved) {
		t.Fatalf("expected approved status match")
	}
	if wo.StatusIs(ApprovalStatusRejected) {
		t.Fatalf("did not expect rejected status match")
	}
	var nilOrder *WorkOrder
	if nilOrder.StatusIs(ApprovalStatusPending) {
		t.Fatalf("nil work order should not match any status")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		count, pageSize, want int
	}{
		{237, 50, 5},
		{0, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{10, 0, 1},
	}
	for _, tc := range cases {
		if got := PageCount(tc.count, tc.pageSize); got != tc.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tc.count, tc.pageSize, got, tc.want)
		}
	}
}

func TestFeedbackRecordSetCategoryLeavesOthersAlone(t *testing.T) {
	record := &FeedbackRecord{
		WorkOrderID: "WO-0002",
		Operating:   &CategoryFeedback{Feedback: FeedbackNegative, Comment: "outdated"},
	}
	record.SetCategory(CategorySafety, &CategoryFeedback{Feedback: FeedbackPositive})
	if record.Safety == nil || record.Safety.Feedback != FeedbackPositive {
		t.Fatalf("expected safety feedback to be set")
	}
	if record.Operating == nil || record.Operating.Comment != "outdated" {
		t.Fatalf("expected operating feedback untouched, got %+v", record.Operating)
	}
	if record.HumanPerformance != nil || record.SimilarWorkOrder != nil {
		t.Fatalf("expected untouched categories to stay nil")
	}
}
