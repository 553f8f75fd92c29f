package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"foreman/internal/types"
)

type popupTab int

const (
	popupTabDetails popupTab = iota
	popupTabSummary
	popupTabApproval
)

// PopupController drives the work order detail popup: a details pane, the
// AI summary pane with per-category feedback and source documents, and the
// approval pane with its acknowledgement gates.
type PopupController struct {
	workOrder *types.WorkOrder
	tab       popupTab

	summary        *types.SummaryData
	summaryLoading bool
	category       int
	docCursor      int
	content        viewport.Model

	feedback        *types.FeedbackRecord
	feedbackPending map[types.SummaryCategory]types.FeedbackVote
	comment         textinput.Model
	commentActive   bool

	approval     *types.ApprovalDetails
	submitting   bool
	submittingAs types.ApprovalStatus
	pendingDoc   string

	width  int
	height int
}

func NewPopupController(width, height int) *PopupController {
	comment := textinput.New()
	comment.Placeholder = "optional comment"
	content := viewport.New(viewport.WithWidth(max(1, width-6)), viewport.WithHeight(max(1, height-12)))
	c := &PopupController{
		comment:         comment,
		content:         content,
		feedbackPending: map[types.SummaryCategory]types.FeedbackVote{},
	}
	c.SetSize(width, height)
	return c
}

func (c *PopupController) IsOpen() bool {
	return c != nil && c.workOrder != nil
}

func (c *PopupController) WorkOrder() *types.WorkOrder {
	if c == nil {
		return nil
	}
	return c.workOrder
}

func (c *PopupController) WorkOrderID() string {
	if c == nil || c.workOrder == nil {
		return ""
	}
	return c.workOrder.ID
}

func (c *PopupController) Open(wo *types.WorkOrder) {
	c.workOrder = wo
	c.tab = popupTabDetails
	c.summary = nil
	c.summaryLoading = true
	c.category = 0
	c.docCursor = 0
	c.feedback = nil
	c.feedbackPending = map[types.SummaryCategory]types.FeedbackVote{}
	c.comment.SetValue("")
	c.comment.Blur()
	c.commentActive = false
	c.approval = nil
	c.submitting = false
	c.submittingAs = ""
	c.pendingDoc = ""
	c.refreshContent()
}

// Close resets the popup and returns the id of the work order it was
// showing, so the caller can drop its acknowledgement state.
func (c *PopupController) Close() string {
	id := c.WorkOrderID()
	c.workOrder = nil
	c.summary = nil
	c.feedback = nil
	c.approval = nil
	c.commentActive = false
	return id
}

func (c *PopupController) SetSize(width, height int) {
	c.width = max(40, width)
	c.height = max(12, height)
	contentWidth := max(1, c.contentWidth())
	c.content.SetWidth(contentWidth)
	c.content.SetHeight(max(1, c.height-13))
	c.comment.SetWidth(clamp(contentWidth-4, 16, 60))
	c.refreshContent()
}

func (c *PopupController) contentWidth() int {
	return clamp(c.width-8, 30, 100)
}

func (c *PopupController) Tab() popupTab { return c.tab }

func (c *PopupController) SetTab(tab popupTab) {
	if tab < popupTabDetails || tab > popupTabApproval {
		return
	}
	c.tab = tab
	c.commentActive = false
	c.comment.Blur()
	c.refreshContent()
}

func (c *PopupController) NextTab() {
	c.SetTab((c.tab + 1) % 3)
}

func (c *PopupController) PrevTab() {
	c.SetTab((c.tab + 2) % 3)
}

func (c *PopupController) Category() types.SummaryCategory {
	return types.SummaryCategories[clamp(c.category, 0, len(types.SummaryCategories)-1)]
}

func (c *PopupController) MoveCategory(delta int) {
	next := clamp(c.category+delta, 0, len(types.SummaryCategories)-1)
	if next == c.category {
		return
	}
	c.category = next
	c.docCursor = 0
	c.refreshContent()
}

func (c *PopupController) SetSummary(summary *types.SummaryData) {
	c.summaryLoading = false
	c.summary = summary
	c.docCursor = 0
	c.refreshContent()
}

func (c *PopupController) Summary() *types.SummaryData { return c.summary }

func (c *PopupController) SetFeedback(record *types.FeedbackRecord) {
	c.feedback = record
}

func (c *PopupController) Feedback() *types.FeedbackRecord { return c.feedback }

// MarkVotePending records an in-flight vote so the UI highlights it before
// the server confirms.
func (c *PopupController) MarkVotePending(category types.SummaryCategory, vote types.FeedbackVote) {
	c.feedbackPending[category] = vote
}

func (c *PopupController) ResolveVote(category types.SummaryCategory, record *types.FeedbackRecord) {
	delete(c.feedbackPending, category)
	if record != nil {
		c.feedback = record
	}
}

func (c *PopupController) VoteFailed(category types.SummaryCategory) {
	delete(c.feedbackPending, category)
}

func (c *PopupController) currentVote(category types.SummaryCategory) types.FeedbackVote {
	if vote, ok := c.feedbackPending[category]; ok {
		return vote
	}
	if entry := c.feedback.Category(category); entry != nil {
		return entry.Feedback
	}
	return ""
}

func (c *PopupController) StartComment() {
	existing := ""
	if entry := c.feedback.Category(c.Category()); entry != nil {
		existing = entry.Comment
	}
	c.comment.SetValue(existing)
	c.commentActive = true
	c.comment.Focus()
}

func (c *PopupController) CancelComment() {
	c.commentActive = false
	c.comment.Blur()
}

func (c *PopupController) CommentActive() bool { return c.commentActive }

func (c *PopupController) CommentValue() string {
	return strings.TrimSpace(c.comment.Value())
}

func (c *PopupController) UpdateComment(msg tea.Msg) tea.Cmd {
	if !c.commentActive {
		return nil
	}
	var cmd tea.Cmd
	c.comment, cmd = c.comment.Update(msg)
	return cmd
}

func (c *PopupController) Documents() []types.SourceDocument {
	return c.summary.Documents(c.Category())
}

func (c *PopupController) MoveDoc(delta int) {
	docs := c.Documents()
	if len(docs) == 0 {
		c.docCursor = 0
		return
	}
	c.docCursor = clamp(c.docCursor+delta, 0, len(docs)-1)
}

func (c *PopupController) CurrentDocument() (types.SourceDocument, bool) {
	docs := c.Documents()
	if c.docCursor < 0 || c.docCursor >= len(docs) {
		return types.SourceDocument{}, false
	}
	return docs[c.docCursor], true
}

func (c *PopupController) SetDownloading(fileName string) {
	c.pendingDoc = fileName
}

func (c *PopupController) DownloadDone() {
	c.pendingDoc = ""
}

func (c *PopupController) SetApprovalDetails(details *types.ApprovalDetails) {
	c.approval = details
}

func (c *PopupController) SetSubmitting(submitting bool) {
	c.submitting = submitting
	if !submitting {
		c.submittingAs = ""
	}
}

// SetSubmittingDecision marks a decision in flight so the busy indicator
// stays scoped to the action that was taken.
func (c *PopupController) SetSubmittingDecision(status types.ApprovalStatus) {
	c.submitting = true
	c.submittingAs = status
}

func (c *PopupController) Submitting() bool { return c.submitting }

// CanDecide reports whether the given decision can still be taken. Each
// action is blocked only by its own terminal state, so a rejected order can
// still be approved and vice versa. No decision is possible while a
// submission is in flight.
func (c *PopupController) CanDecide(status types.ApprovalStatus) bool {
	return c.IsOpen() && !c.submitting && !c.workOrder.StatusIs(status)
}

// CanDecideAny reports whether at least one decision remains available.
func (c *PopupController) CanDecideAny() bool {
	return c.CanDecide(types.ApprovalStatusApproved) || c.CanDecide(types.ApprovalStatusRejected)
}

// ApplyDecision optimistically flips the work order status after the server
// accepted the decision.
func (c *PopupController) ApplyDecision(status types.ApprovalStatus) {
	if c.workOrder == nil {
		return
	}
	c.workOrder.ApprovalStatus = string(status)
	c.submitting = false
	c.submittingAs = ""
}

func (c *PopupController) ScrollContent(lines int) {
	if lines < 0 {
		c.content.ScrollUp(-lines)
	} else {
		c.content.ScrollDown(lines)
	}
}

func (c *PopupController) refreshContent() {
	if c.workOrder == nil {
		return
	}
	width := c.content.Width()
	switch c.tab {
	case popupTabSummary:
		text := ""
		switch {
		case c.summaryLoading:
			text = "Loading summary..."
		case c.summary == nil:
			text = types.SummaryPlaceholder
		default:
			text = c.summary.Text(c.Category())
			if strings.TrimSpace(text) == "" {
				text = types.SummaryPlaceholder
			}
		}
		c.content.SetContent(renderMarkdown(text, width))
	case popupTabDetails:
		c.content.SetContent(c.detailLines(width))
	default:
		c.content.SetContent("")
	}
	c.content.GotoTop()
}

func (c *PopupController) detailLines(width int) string {
	wo := c.workOrder
	pair := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "not set"
		}
		return fieldLabelStyle.Render(padToWidth(label, 18)) + " " + truncateToWidth(value, max(1, width-20))
	}
	active := "no"
	if wo.Active {
		active = "yes"
	}
	generated := "no"
	if wo.SummaryGenerated {
		generated = "yes"
	}
	lines := []string{
		pair("Description", wo.Description),
		pair("Type", wo.TypeID),
		pair("Responsible group", wo.ResponsibleGroupID),
		pair("Lifecycle state", wo.LifecycleState),
		pair("Cost type", wo.CostType),
		pair("Service level", fmt.Sprintf("%d", wo.ServiceLevel)),
		pair("Expected", fmtTimeRange(wo.ExpectedStart, wo.ExpectedEnd)),
		pair("Scheduled", fmtTimeRange(wo.ScheduledStart, wo.ScheduledEnd)),
		pair("Actual", fmtTimeRange(wo.ActualStart, wo.ActualEnd)),
		pair("Active", active),
		pair("Summary ready", generated),
	}
	return strings.Join(lines, "\n")
}

func (c *PopupController) View(acks *AckStore) string {
	if !c.IsOpen() {
		return ""
	}
	width := c.contentWidth()
	var b strings.Builder
	b.WriteString(headerStyle.Render(c.workOrder.ID) + "  " + statusBadgeForRaw(c.workOrder.ApprovalStatus))
	b.WriteString("\n")
	b.WriteString(c.tabLine())
	b.WriteString("\n")
	switch c.tab {
	case popupTabDetails:
		b.WriteString(c.content.View())
		b.WriteString("\n" + helpStyle.Render("tab switch pane · esc close"))
	case popupTabSummary:
		b.WriteString(c.summaryView(width))
	case popupTabApproval:
		b.WriteString(c.approvalView(acks))
	}
	box := popupBorderStyle.Width(width + 2).Render(b.String())
	return box
}

func (c *PopupController) tabLine() string {
	labels := []string{"Details", "AI Summary", "Approval"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if popupTab(i) == c.tab {
			parts[i] = tabActiveStyle.Render(" " + label + " ")
		} else {
			parts[i] = tabInactiveStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (c *PopupController) summaryView(width int) string {
	var b strings.Builder
	category := c.Category()
	short := []string{"Safety", "Operating", "Human Perf", "Similar WOs"}
	parts := make([]string, len(short))
	for i, label := range short {
		if i == c.category {
			parts[i] = tabActiveStyle.Render(" " + label + " ")
		} else {
			parts[i] = tabInactiveStyle.Render(" " + label + " ")
		}
	}
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n")
	b.WriteString(fieldLabelStyle.Render(category.Label()))
	b.WriteString("\n")
	b.WriteString(c.content.View())
	b.WriteString("\n")

	docs := c.Documents()
	if len(docs) > 0 {
		b.WriteString(fieldLabelStyle.Render("Source documents"))
		b.WriteString("\n")
		for i, doc := range docs {
			label := doc.Title
			if label == "" {
				label = doc.FileName
			}
			line := "  " + truncateToWidth(label, max(1, width-4))
			if doc.FileName == c.pendingDoc {
				line += " (downloading...)"
			}
			if i == c.docCursor {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(rowStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	up := "+ helpful"
	down := "- not helpful"
	switch c.currentVote(category) {
	case types.FeedbackPositive:
		up = voteSelectedStyle.Render(up)
		down = voteIdleStyle.Render(down)
	case types.FeedbackNegative:
		up = voteIdleStyle.Render(up)
		down = voteSelectedStyle.Render(down)
	default:
		up = voteIdleStyle.Render(up)
		down = voteIdleStyle.Render(down)
	}
	b.WriteString("Feedback: " + up + "  " + down)
	if entry := c.feedback.Category(category); entry != nil && entry.Comment != "" && !c.commentActive {
		b.WriteString("\n" + statusStyle.Render("comment: "+truncateToWidth(entry.Comment, max(1, width-10))))
	}
	if c.commentActive {
		action := "Submit"
		if c.feedback.Category(category) != nil {
			action = "Update"
		}
		b.WriteString("\n" + "comment: " + c.comment.View())
		b.WriteString("\n" + helpStyle.Render("enter "+action+" · esc discard"))
	} else {
		b.WriteString("\n" + helpStyle.Render("←/→ category · ↑/↓ scroll · j/k document · d download · +/- vote · m comment · a assistant · esc close"))
	}
	return b.String()
}

func (c *PopupController) approvalView(acks *AckStore) string {
	var b strings.Builder
	wo := c.workOrder
	if !wo.StatusIs(types.ApprovalStatusPending) {
		b.WriteString("This work order is " + strings.ToLower(strings.TrimSpace(wo.ApprovalStatus)) + ".")
		if c.approval != nil {
			b.WriteString("\n\n")
			actor := c.approval.ActionBy.FullName
			if actor == "" {
				actor = c.approval.ActionBy.Email
			}
			b.WriteString(fieldLabelStyle.Render(padToWidth("Decided by", 12)) + " " + actor)
			b.WriteString("\n")
			b.WriteString(fieldLabelStyle.Render(padToWidth("Decided at", 12)) + " " + fmtTime(&c.approval.ActionDate))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("Before deciding, confirm each point:\n\n")
	for gate := ackGate(0); gate < ackGateCount; gate++ {
		mark := "[ ]"
		style := checkUncheckedStyle
		if acks.Checked(wo.ID, gate) {
			mark = "[x]"
			style = checkCheckedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %s %d. %s", mark, int(gate)+1, gate.Label())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	approve := "[ Approve ]"
	reject := "[ Reject ]"
	if c.submitting {
		switch c.submittingAs {
		case types.ApprovalStatusApproved:
			approve = "[ Approving... ]"
		case types.ApprovalStatusRejected:
			reject = "[ Rejecting... ]"
		}
		b.WriteString(disabledButtonStyle.Render(approve) + "  " + disabledButtonStyle.Render(reject))
		b.WriteString("\n" + statusStyle.Render("Submitting decision..."))
		return b.String()
	}

	// Each button is hidden once the order already sits in its terminal state.
	enabled := acks.AllChecked(wo.ID)
	var buttons, hints []string
	if c.CanDecide(types.ApprovalStatusApproved) {
		if enabled {
			buttons = append(buttons, approveButtonStyle.Render(approve))
			hints = append(hints, "a approve")
		} else {
			buttons = append(buttons, disabledButtonStyle.Render(approve))
		}
	}
	if c.CanDecide(types.ApprovalStatusRejected) {
		if enabled {
			buttons = append(buttons, rejectButtonStyle.Render(reject))
			hints = append(hints, "r reject")
		} else {
			buttons = append(buttons, disabledButtonStyle.Render(reject))
		}
	}
	b.WriteString(strings.Join(buttons, "  "))
	if enabled {
		hints = append(hints, "1/2/3 toggle checks")
		b.WriteString("\n" + helpStyle.Render(strings.Join(hints, " · ")))
	} else {
		b.WriteString("\n" + helpStyle.Render("check all three points to enable the decision · 1/2/3 toggle"))
	}
	return b.String()
}

func fmtTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "not set"
	}
	return t.Local().Format("02 Jan 2006 15:04")
}

func fmtTimeRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return "not set"
	}
	return fmtTime(start) + " to " + fmtTime(end)
}
