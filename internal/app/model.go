package app

import (
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"foreman/internal/logging"
	"foreman/internal/session"
	"foreman/internal/store"
	"foreman/internal/types"
)

const (
	searchDebounce = 400 * time.Millisecond
	tickInterval   = 100 * time.Millisecond
	minTableWidth  = 60
)

type uiMode int

const (
	uiModeLoading uiMode = iota
	uiModeSignIn
	uiModeTable
)

type confirmAction int

const (
	confirmActionNone confirmAction = iota
	confirmActionDecision
	confirmActionLogout
)

type tickMsg time.Time

type Model struct {
	session      *session.Store
	authAPI      AuthAPI
	workOrderAPI WorkOrderAPI
	approvalAPI  ApprovalAPI
	summaryAPI   SummaryAPI
	blobAPI      BlobAPI
	logger       logging.Logger

	mode       uiMode
	query      *QueryController
	acks       *AckStore
	signIn     *SignInController
	popup      *PopupController
	chat       *ChatController
	confirm    *ConfirmController
	filterMenu *FilterController

	sortMenuOpen   bool
	sortMenuCursor int

	searchInput   textinput.Model
	searchFocused bool

	columns    []types.FilterableColumn
	workOrders []*types.WorkOrder
	cursor     int
	rowOffset  int
	loading    bool
	restored   bool

	confirmFor      confirmAction
	pendingDecision types.ApprovalStatus

	downloadsDir string
	loader       spinner.Model
	status       string
	width        int
	height       int

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
}

type Options struct {
	Session      *session.Store
	API          API
	StateStore   store.UIStateStore
	PageSize     int
	DownloadsDir string
	Logger       logging.Logger
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	loader := spinner.New()
	loader.Spinner = spinner.Line
	loader.Style = lipgloss.NewStyle()
	search := textinput.New()
	search.Placeholder = "search work orders"

	return Model{
		session:      opts.Session,
		authAPI:      opts.API,
		workOrderAPI: opts.API,
		approvalAPI:  opts.API,
		summaryAPI:   opts.API,
		blobAPI:      opts.API,
		logger:       logger,
		mode:         uiModeLoading,
		query:        NewQueryController(opts.StateStore, opts.PageSize, logger),
		acks:         NewAckStore(),
		signIn:       NewSignInController(60),
		popup:        NewPopupController(80, 24),
		chat:         NewChatController(80, 24),
		confirm:      NewConfirmController(),
		filterMenu:   NewFilterController(),
		searchInput:  search,
		downloadsDir: opts.DownloadsDir,
		loader:       loader,
	}
}

func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(&model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(resumeSessionCmd(m.session), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.signIn.Resize(msg.Width)
		m.popup.SetSize(msg.Width-4, msg.Height-2)
		m.chat.SetSize(msg.Width-8, msg.Height-4)
		m.searchInput.SetWidth(clamp(msg.Width-30, 16, 60))
		return m, nil
	case tickMsg:
		if m.loading || m.mode == uiModeLoading {
			m.loader, _ = m.loader.Update(spinner.TickMsg{Time: time.Time(msg), ID: m.loader.ID()})
		}
		return m, tickCmd()
	case sessionResumedMsg:
		return m.onSessionResumed(msg)
	case loginMsg:
		return m.onLogin(msg)
	case forgotPasswordMsg:
		if msg.err != nil {
			m.signIn.SetError("reset request failed: " + msg.err.Error())
		} else {
			m.signIn.SetInfo("If " + msg.email + " is registered, a reset link is on its way.")
		}
		return m, nil
	case workOrdersMsg:
		return m.onWorkOrders(msg)
	case filterableColumnsMsg:
		if msg.err != nil {
			m.logger.Warn("filterable columns fetch failed", logging.F("err", msg.err))
			return m, nil
		}
		m.columns = msg.columns
		return m, nil
	case filterValuesMsg:
		if msg.err != nil {
			m.filterMenu.Close()
			m.showErrorToast("filter values: " + msg.err.Error())
			return m, nil
		}
		m.filterMenu.SetValues(msg.field, msg.values, m.query.Filter(msg.field))
		return m, nil
	case searchDebounceMsg:
		if m.query.CommitSearch(msg.seq) {
			return m, m.startFetch()
		}
		return m, nil
	case summaryMsg:
		if m.popup.WorkOrderID() != msg.workOrderID {
			return m, nil
		}
		summary := msg.summary
		if msg.err != nil {
			m.logger.Warn("summary fetch failed", logging.F("wo", msg.workOrderID), logging.F("err", msg.err))
			summary = types.PlaceholderSummary(msg.workOrderID)
		}
		m.popup.SetSummary(summary)
		return m, nil
	case feedbackMsg:
		if m.popup.WorkOrderID() != msg.workOrderID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("feedback fetch failed", logging.F("wo", msg.workOrderID), logging.F("err", msg.err))
			m.showWarningToast("Could not load existing feedback")
			return m, nil
		}
		m.popup.SetFeedback(msg.record)
		return m, nil
	case feedbackSubmittedMsg:
		if m.popup.WorkOrderID() != msg.workOrderID {
			return m, nil
		}
		if msg.err != nil {
			m.popup.VoteFailed(msg.category)
			m.showErrorToast("feedback failed: " + msg.err.Error())
			return m, nil
		}
		m.popup.ResolveVote(msg.category, msg.record)
		m.showInfoToast("Feedback recorded")
		return m, nil
	case approvalSubmittedMsg:
		return m.onApprovalSubmitted(msg)
	case approvalDetailsMsg:
		if m.popup.WorkOrderID() == msg.workOrderID && msg.err == nil {
			m.popup.SetApprovalDetails(msg.details)
		}
		return m, nil
	case documentDownloadedMsg:
		m.popup.DownloadDone()
		switch {
		case msg.err == nil:
			m.showInfoToast("Saved " + msg.path)
		case msg.signedURL != "":
			// saving failed after the URL was issued; hand the URL over instead
			m.logger.Warn("document save failed", logging.F("file", msg.fileName), logging.F("err", msg.err))
			if copyErr := copyTextToClipboard(msg.signedURL); copyErr != nil {
				m.showErrorToast("download failed: " + msg.err.Error())
			} else {
				m.showWarningToast("Could not save " + msg.fileName + "; download link copied, fetch it manually")
			}
		default:
			m.showErrorToast("download failed: " + msg.err.Error())
		}
		return m, nil
	case assistantReplyMsg:
		if m.chat.IsOpen() && m.chat.WorkOrderID() == msg.workOrderID {
			m.chat.Receive(msg.text)
		}
		return m, nil
	case tea.KeyMsg:
		return m.onKey(msg)
	}

	if m.mode == uiModeSignIn {
		return m, m.signIn.Update(msg)
	}
	return m, nil
}

func (m *Model) onSessionResumed(msg sessionResumedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("session resume failed", logging.F("err", msg.err))
	}
	if !msg.authenticated {
		m.mode = uiModeSignIn
		return m, nil
	}
	return m, m.enterTable()
}

func (m *Model) onLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.signIn.SetSubmitting(false)
	if msg.err != nil {
		if errors.Is(msg.err, session.ErrInvalidCredentials) {
			m.signIn.SetError("Invalid username or password.")
		} else {
			m.signIn.SetError("Sign in failed: " + msg.err.Error())
		}
		return m, nil
	}
	return m, m.enterTable()
}

func (m *Model) enterTable() tea.Cmd {
	m.mode = uiModeTable
	if !m.restored {
		m.query.Restore()
		m.searchInput.SetValue(m.query.SearchInput())
		m.restored = true
	}
	if user := m.session.User(); user != nil {
		m.status = "signed in as " + user.DisplayName()
	}
	return tea.Batch(fetchFilterableColumnsCmd(m.workOrderAPI), m.startFetch())
}

func (m *Model) startFetch() tea.Cmd {
	seq := m.query.NextFetchSeq()
	m.loading = true
	return fetchWorkOrdersCmd(m.workOrderAPI, m.query.Request(), seq)
}

func (m *Model) onWorkOrders(msg workOrdersMsg) (tea.Model, tea.Cmd) {
	if !m.query.IsCurrentFetch(msg.seq) {
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.showErrorToast("load failed: " + msg.err.Error())
		return m, nil
	}
	if msg.page == nil {
		return m, nil
	}
	m.workOrders = msg.page.Records
	if m.query.SetTotalCount(msg.page.TotalCount) {
		// The page we asked for no longer exists; refetch the clamped one.
		return m, m.startFetch()
	}
	if len(m.workOrders) == 0 {
		m.cursor = 0
	} else {
		m.cursor = clamp(m.cursor, 0, len(m.workOrders)-1)
	}
	m.rowOffset = 0
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) onApprovalSubmitted(msg approvalSubmittedMsg) (tea.Model, tea.Cmd) {
	m.popup.SetSubmitting(false)
	if msg.err != nil {
		m.showErrorToast("decision failed: " + msg.err.Error())
		return m, nil
	}
	status := msg.status
	if msg.resp != nil && strings.TrimSpace(msg.resp.Status) != "" {
		status = types.ApprovalStatus(strings.ToUpper(strings.TrimSpace(msg.resp.Status)))
	}
	if m.popup.WorkOrderID() == msg.workOrderID {
		m.popup.ApplyDecision(status)
	}
	for _, wo := range m.workOrders {
		if wo.ID == msg.workOrderID {
			wo.ApprovalStatus = string(status)
		}
	}
	m.acks.Clear(msg.workOrderID)
	if status == types.ApprovalStatusRejected {
		m.showWarningToast("Work order " + msg.workOrderID + " rejected")
	} else {
		m.showInfoToast("Work order " + msg.workOrderID + " approved")
	}
	return m, fetchApprovalCmd(m.approvalAPI, msg.workOrderID)
}

func (m *Model) selectedWorkOrder() *types.WorkOrder {
	if m.cursor < 0 || m.cursor >= len(m.workOrders) {
		return nil
	}
	return m.workOrders[m.cursor]
}

func (m *Model) visibleRows() int {
	return max(3, m.height-9)
}

func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursor < m.rowOffset {
		m.rowOffset = m.cursor
	}
	if m.cursor >= m.rowOffset+rows {
		m.rowOffset = m.cursor - rows + 1
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}
