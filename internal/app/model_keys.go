package app

import (
	tea "charm.land/bubbletea/v2"

	"foreman/internal/client"
	"foreman/internal/types"
)

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case uiModeLoading:
		return m, nil
	case uiModeSignIn:
		return m.onSignInKey(msg)
	}
	if m.confirm.IsOpen() {
		return m.onConfirmKey(msg)
	}
	if m.chat.IsOpen() {
		return m.onChatKey(msg)
	}
	if m.filterMenu.IsOpen() {
		return m.onFilterMenuKey(msg)
	}
	if m.sortMenuOpen {
		return m.onSortMenuKey(msg)
	}
	if m.popup.IsOpen() {
		return m.onPopupKey(msg)
	}
	if m.searchFocused {
		return m.onSearchKey(msg)
	}
	return m.onTableKey(msg)
}

func (m *Model) onSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.signIn.Submitting() {
			return m, nil
		}
		if m.signIn.ForgotMode() {
			email := m.signIn.Email()
			if email == "" {
				return m, nil
			}
			return m, forgotPasswordCmd(m.authAPI, email)
		}
		if !m.signIn.CanSubmit() {
			m.signIn.SetError("Enter a username and password.")
			return m, nil
		}
		username, password := m.signIn.Credentials()
		m.signIn.SetSubmitting(true)
		m.signIn.SetError("")
		return m, loginCmd(m.session, username, password)
	case "tab", "shift+tab":
		m.signIn.CycleFocus()
		return m, nil
	case "ctrl+f":
		m.signIn.EnterForgotMode()
		return m, nil
	case "esc":
		if m.signIn.ForgotMode() {
			m.signIn.LeaveForgotMode()
			return m, nil
		}
		return m, tea.Quit
	}
	return m, m.signIn.Update(msg)
}

func (m *Model) onConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled, choice := m.confirm.HandleKey(msg)
	if !handled {
		return m, nil
	}
	if choice == confirmChoiceNone {
		return m, nil
	}
	action := m.confirmFor
	decision := m.pendingDecision
	m.confirm.Close()
	m.confirmFor = confirmActionNone
	m.pendingDecision = ""
	if choice != confirmChoiceConfirm {
		return m, nil
	}
	switch action {
	case confirmActionDecision:
		id := m.popup.WorkOrderID()
		if id == "" || !m.popup.CanDecide(decision) {
			return m, nil
		}
		m.popup.SetSubmittingDecision(decision)
		return m, submitApprovalCmd(m.approvalAPI, id, decision)
	case confirmActionLogout:
		m.logout()
		return m, nil
	}
	return m, nil
}

func (m *Model) logout() {
	m.session.Logout()
	m.popup.Close()
	m.chat.Close()
	m.acks = NewAckStore()
	m.workOrders = nil
	m.cursor = 0
	m.rowOffset = 0
	m.status = ""
	m.searchFocused = false
	m.signIn.SetSubmitting(false)
	m.signIn.SetError("")
	m.mode = uiModeSignIn
}

func (m *Model) onChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chat.Close()
		return m, nil
	}
	if !m.chat.TopicPicked() {
		switch msg.String() {
		case "up", "k":
			m.chat.MoveTopic(-1)
		case "down", "j":
			m.chat.MoveTopic(1)
		case "enter":
			m.chat.PickTopic()
		}
		return m, nil
	}
	switch msg.String() {
	case "enter":
		text, ok := m.chat.Send()
		if !ok {
			return m, nil
		}
		return m, assistantReplyCmd(m.chat.WorkOrderID(), m.chat.Topic(), text, m.chat.AssistantContext())
	case "up":
		m.chat.ScrollTranscript(-1)
		return m, nil
	case "down":
		m.chat.ScrollTranscript(1)
		return m, nil
	case "pgup":
		m.chat.ScrollTranscript(-5)
		return m, nil
	case "pgdown":
		m.chat.ScrollTranscript(5)
		return m, nil
	}
	return m, m.chat.UpdateInput(msg)
}

func (m *Model) onFilterMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.filterMenu.Close()
		return m, nil
	case "up", "k":
		m.filterMenu.Move(-1)
		return m, nil
	case "down", "j":
		m.filterMenu.Move(1)
		return m, nil
	case "enter":
		if m.filterMenu.Stage() == filterStageColumn {
			field, label := m.filterMenu.Selected()
			if field == "" {
				return m, nil
			}
			m.filterMenu.EnterValues(field, label)
			return m, fetchFilterValuesCmd(m.workOrderAPI, field)
		}
		if m.filterMenu.Loading() {
			return m, nil
		}
		field := m.filterMenu.Field()
		changed := false
		if m.filterMenu.IsAllSelected() {
			changed = m.query.ClearFilter(field)
		} else {
			value, _ := m.filterMenu.Selected()
			changed = m.query.SetFilter(field, value)
		}
		m.filterMenu.Close()
		if changed {
			return m, m.startFetch()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) onSortMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.sortMenuOpen = false
		return m, nil
	case "up", "k":
		m.sortMenuCursor = clamp(m.sortMenuCursor-1, 0, len(tableColumns)-1)
		return m, nil
	case "down", "j":
		m.sortMenuCursor = clamp(m.sortMenuCursor+1, 0, len(tableColumns)-1)
		return m, nil
	case "enter":
		field := tableColumns[clamp(m.sortMenuCursor, 0, len(tableColumns)-1)].field
		m.sortMenuOpen = false
		if m.query.ToggleSort(field) {
			return m, m.startFetch()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) onPopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popup.CommentActive() {
		switch msg.String() {
		case "esc":
			m.popup.CancelComment()
			return m, nil
		case "enter":
			return m, m.saveComment()
		}
		return m, m.popup.UpdateComment(msg)
	}
	switch msg.String() {
	case "esc", "q":
		id := m.popup.Close()
		m.acks.Clear(id)
		return m, nil
	case "tab":
		m.popup.NextTab()
		return m, nil
	case "shift+tab":
		m.popup.PrevTab()
		return m, nil
	case "c":
		m.copyWithToast(m.popup.WorkOrderID(), "Copied "+m.popup.WorkOrderID())
		return m, nil
	}
	switch m.popup.Tab() {
	case popupTabDetails:
		switch msg.String() {
		case "up", "k":
			m.popup.ScrollContent(-1)
		case "down", "j":
			m.popup.ScrollContent(1)
		}
		return m, nil
	case popupTabSummary:
		return m.onSummaryKey(msg)
	case popupTabApproval:
		return m.onApprovalKey(msg)
	}
	return m, nil
}

func (m *Model) onSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.popup.MoveCategory(-1)
		return m, nil
	case "right", "l":
		m.popup.MoveCategory(1)
		return m, nil
	case "up":
		m.popup.ScrollContent(-1)
		return m, nil
	case "down":
		m.popup.ScrollContent(1)
		return m, nil
	case "j":
		m.popup.MoveDoc(1)
		return m, nil
	case "k":
		m.popup.MoveDoc(-1)
		return m, nil
	case "d":
		doc, ok := m.popup.CurrentDocument()
		if !ok {
			return m, nil
		}
		m.popup.SetDownloading(doc.FileName)
		return m, downloadDocumentCmd(m.blobAPI, doc.FileName, m.downloadsDir)
	case "+", "=":
		return m, m.submitVote(types.FeedbackPositive)
	case "-", "_":
		return m, m.submitVote(types.FeedbackNegative)
	case "m":
		m.popup.StartComment()
		return m, nil
	case "a":
		m.chat.Open(m.popup.WorkOrder())
		return m, nil
	}
	return m, nil
}

func (m *Model) onApprovalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.popup.WorkOrderID()
	switch msg.String() {
	case "1":
		if m.popup.CanDecideAny() {
			m.acks.Toggle(id, ackTechnical)
		}
		return m, nil
	case "2":
		if m.popup.CanDecideAny() {
			m.acks.Toggle(id, ackServiceLevel)
		}
		return m, nil
	case "3":
		if m.popup.CanDecideAny() {
			m.acks.Toggle(id, ackCustomerCosts)
		}
		return m, nil
	case "a":
		return m, m.openDecisionConfirm(types.ApprovalStatusApproved)
	case "r":
		return m, m.openDecisionConfirm(types.ApprovalStatusRejected)
	}
	return m, nil
}

func (m *Model) openDecisionConfirm(status types.ApprovalStatus) tea.Cmd {
	id := m.popup.WorkOrderID()
	if !m.popup.CanDecide(status) || !m.acks.AllChecked(id) {
		return nil
	}
	verb := "Approve"
	if status == types.ApprovalStatusRejected {
		verb = "Reject"
	}
	m.confirmFor = confirmActionDecision
	m.pendingDecision = status
	m.confirm.Open("Confirm decision", verb+" work order "+id+"? This cannot be undone.", verb, "Cancel")
	return nil
}

func (m *Model) submitVote(vote types.FeedbackVote) tea.Cmd {
	wo := m.popup.WorkOrder()
	if wo == nil {
		return nil
	}
	category := m.popup.Category()
	comment := ""
	if entry := m.popup.Feedback().Category(category); entry != nil {
		comment = entry.Comment
	}
	m.popup.MarkVotePending(category, vote)
	return submitFeedbackCmd(m.summaryAPI, client.SubmitFeedbackRequest{
		WorkOrderID: wo.ID,
		Category:    category,
		Feedback:    vote,
		Comment:     comment,
	})
}

func (m *Model) saveComment() tea.Cmd {
	wo := m.popup.WorkOrder()
	if wo == nil {
		m.popup.CancelComment()
		return nil
	}
	category := m.popup.Category()
	vote := m.popup.currentVote(category)
	if vote == "" {
		vote = types.FeedbackPositive
	}
	comment := m.popup.CommentValue()
	m.popup.CancelComment()
	m.popup.MarkVotePending(category, vote)
	return submitFeedbackCmd(m.summaryAPI, client.SubmitFeedbackRequest{
		WorkOrderID: wo.ID,
		Category:    category,
		Feedback:    vote,
		Comment:     comment,
	})
}

func (m *Model) onSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	value := m.searchInput.Value()
	if value != m.query.SearchInput() {
		seq := m.query.SetSearchInput(value)
		return m, tea.Batch(cmd, debounceSearchCmd(seq, searchDebounce))
	}
	return m, cmd
}

func (m *Model) onTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil
	case "f":
		if len(m.columns) == 0 {
			m.showWarningToast("No filterable columns available")
			return m, nil
		}
		m.filterMenu.Open(m.columns)
		return m, nil
	case "s":
		m.sortMenuOpen = true
		m.sortMenuCursor = 0
		return m, nil
	case "r":
		return m, m.startFetch()
	case "x":
		if m.query.ClearAll() {
			m.searchInput.SetValue("")
			return m, m.startFetch()
		}
		return m, nil
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, max(0, len(m.workOrders)-1))
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, max(0, len(m.workOrders)-1))
		m.ensureCursorVisible()
		return m, nil
	case "g", "home":
		m.cursor = 0
		m.ensureCursorVisible()
		return m, nil
	case "G", "end":
		m.cursor = max(0, len(m.workOrders)-1)
		m.ensureCursorVisible()
		return m, nil
	case "left", "h", "pgup":
		if m.query.PrevPage() {
			return m, m.startFetch()
		}
		return m, nil
	case "right", "l", "pgdown":
		if m.query.NextPage() {
			return m, m.startFetch()
		}
		return m, nil
	case "enter":
		return m, m.openPopup()
	case "c":
		if wo := m.selectedWorkOrder(); wo != nil {
			m.copyWithToast(wo.ID, "Copied "+wo.ID)
		}
		return m, nil
	case "ctrl+l":
		m.confirmFor = confirmActionLogout
		m.confirm.Open("Sign out", "Sign out of the approval dashboard?", "Sign out", "Cancel")
		return m, nil
	}
	return m, nil
}

func (m *Model) openPopup() tea.Cmd {
	wo := m.selectedWorkOrder()
	if wo == nil {
		return nil
	}
	m.popup.Open(wo)
	cmds := []tea.Cmd{
		fetchSummaryCmd(m.summaryAPI, wo.ID),
		fetchFeedbackCmd(m.summaryAPI, wo.ID),
	}
	if !wo.StatusIs(types.ApprovalStatusPending) {
		cmds = append(cmds, fetchApprovalCmd(m.approvalAPI, wo.ID))
	}
	return tea.Batch(cmds...)
}
