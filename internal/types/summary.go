package types

type SummaryCategory string

const (
	CategorySafety              SummaryCategory = "safety"
	CategoryOperatingExperience SummaryCategory = "operating"
	CategoryHumanPerformance    SummaryCategory = "hpt"
	CategorySimilarWorkOrders   SummaryCategory = "similar_wo"
)

// SummaryCategories lists the categories in display order.
var SummaryCategories = []SummaryCategory{
	CategorySafety,
	CategoryOperatingExperience,
	CategoryHumanPerformance,
	CategorySimilarWorkOrders,
}

func (c SummaryCategory) Label() string {
	switch c {
	case CategorySafety:
		return "Safety Rules & Standard Operating Procedures"
	case CategoryOperatingExperience:
		return "Operating Experience"
	case CategoryHumanPerformance:
		return "Human Performance Tools"
	case CategorySimilarWorkOrders:
		return "Similar Work Orders"
	default:
		return string(c)
	}
}

type SourceDocument struct {
	FileName string `json:"file_name"`
	Title    string `json:"title,omitempty"`
}

type SummaryData struct {
	WorkOrderID               string           `json:"work_order_id,omitempty"`
	SafetyRulesSummary        string           `json:"safety_rules_summary"`
	OperatingExperienceText   string           `json:"operating_experience_summary"`
	HumanPerformanceSummary   string           `json:"hpt_rules_summary"`
	SimilarWorkOrdersSummary  string           `json:"similar_wo_summary"`
	SafetyDocuments           []SourceDocument `json:"safety_rules_sources,omitempty"`
	OperatingDocuments        []SourceDocument `json:"operating_experience_sources,omitempty"`
	HumanPerformanceDocuments []SourceDocument `json:"hpt_rules_sources,omitempty"`
	SimilarWorkOrderDocuments []SourceDocument `json:"similar_wo_sources,omitempty"`
	Error                     string           `json:"error,omitempty"`
}

// SummaryPlaceholder is shown for every category when summaries are missing
// or malformed. It is always all-or-nothing, never a partial mix.
const SummaryPlaceholder = "Summary not ready yet. Please check back shortly."

// PlaceholderSummary returns a SummaryData with every category set to the
// shared placeholder text.
func PlaceholderSummary(workOrderID string) *SummaryData {
	return &SummaryData{
		WorkOrderID:              workOrderID,
		SafetyRulesSummary:       SummaryPlaceholder,
		OperatingExperienceText:  SummaryPlaceholder,
		HumanPerformanceSummary:  SummaryPlaceholder,
		SimilarWorkOrdersSummary: SummaryPlaceholder,
	}
}

func (s *SummaryData) Text(category SummaryCategory) string {
	if s == nil {
		return ""
	}
	switch category {
	case CategorySafety:
		return s.SafetyRulesSummary
	case CategoryOperatingExperience:
		return s.OperatingExperienceText
	case CategoryHumanPerformance:
		return s.HumanPerformanceSummary
	case CategorySimilarWorkOrders:
		return s.SimilarWorkOrdersSummary
	default:
		return ""
	}
}

func (s *SummaryData) Documents(category SummaryCategory) []SourceDocument {
	if s == nil {
		return nil
	}
	switch category {
	case CategorySafety:
		return s.SafetyDocuments
	case CategoryOperatingExperience:
		return s.OperatingDocuments
	case CategoryHumanPerformance:
		return s.HumanPerformanceDocuments
	case CategorySimilarWorkOrders:
		return s.SimilarWorkOrderDocuments
	default:
		return nil
	}
}
