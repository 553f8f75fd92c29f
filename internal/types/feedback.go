package types

type FeedbackVote string

const (
	FeedbackPositive FeedbackVote = "positive"
	FeedbackNegative FeedbackVote = "negative"
)

type CategoryFeedback struct {
	Feedback FeedbackVote `json:"feedback,omitempty"`
	Comment  string       `json:"comment,omitempty"`
}

// FeedbackRecord holds one reviewer's feedback for a work order, one
// optional entry per summary category.
type FeedbackRecord struct {
	WorkOrderID      string            `json:"work_order_id"`
	UserID           string            `json:"user_id,omitempty"`
	Safety           *CategoryFeedback `json:"safety,omitempty"`
	Operating        *CategoryFeedback `json:"operating,omitempty"`
	HumanPerformance *CategoryFeedback `json:"hpt,omitempty"`
	SimilarWorkOrder *CategoryFeedback `json:"similar_wo,omitempty"`
}

func (r *FeedbackRecord) Category(category SummaryCategory) *CategoryFeedback {
	if r == nil {
		return nil
	}
	switch category {
	case CategorySafety:
		return r.Safety
	case CategoryOperatingExperience:
		return r.Operating
	case CategoryHumanPerformance:
		return r.HumanPerformance
	case CategorySimilarWorkOrders:
		return r.SimilarWorkOrder
	default:
		return nil
	}
}

// SetCategory replaces the entry for one category, leaving the others alone.
func (r *FeedbackRecord) SetCategory(category SummaryCategory, entry *CategoryFeedback) {
	if r == nil {
		return
	}
	switch category {
	case CategorySafety:
		r.Safety = entry
	case CategoryOperatingExperience:
		r.Operating = entry
	case CategoryHumanPerformance:
		r.HumanPerformance = entry
	case CategorySimilarWorkOrders:
		r.SimilarWorkOrder = entry
	}
}

func CloneFeedbackRecord(in *FeedbackRecord) *FeedbackRecord {
	if in == nil {
		return nil
	}
	out := *in
	clone := func(entry *CategoryFeedback) *CategoryFeedback {
		if entry == nil {
			return nil
		}
		v := *entry
		return &v
	}
	out.Safety = clone(in.Safety)
	out.Operating = clone(in.Operating)
	out.HumanPerformance = clone(in.HumanPerformance)
	out.SimilarWorkOrder = clone(in.SimilarWorkOrder)
	return &out
}
