package app

import (
	"charm.land/lipgloss/v2"

	"foreman/internal/types"
)

var (
	headerStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tableHeaderStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Bold(true)
	selectedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	rowStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rowMutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	skeletonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	emptyStateStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	errorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	fieldLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	panelBorderStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	popupBorderStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	menuHeaderStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	menuItemStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	confirmBorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	tabActiveStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
	tabInactiveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	checkCheckedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	checkUncheckedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	approveButtonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true).Underline(true)
	rejectButtonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).Underline(true)
	disabledButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Underline(true)
	voteSelectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	voteIdleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	userBubbleStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Background(lipgloss.Color("236")).Padding(0, 1)
	assistantBubbleStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	toastInfoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)

	statusPendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("178")).Bold(true)
	statusApprovedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	statusRejectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
	statusCancelledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("240"))
	statusFinishedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("26")).Bold(true)
	statusUnknownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var badgeOrder = []types.ApprovalStatus{
	types.ApprovalStatusPending,
	types.ApprovalStatusApproved,
	types.ApprovalStatusRejected,
	types.ApprovalStatusCancelled,
	types.ApprovalStatusFinished,
}

// statusBadgeForRaw maps a raw server status string onto one of the known
// badges, tolerating variant casings and decorated values.
func statusBadgeForRaw(raw string) string {
	for _, status := range badgeOrder {
		if types.StatusMatches(raw, status) {
			return statusBadge(status)
		}
	}
	return statusUnknownStyle.Render(" " + raw + " ")
}

func statusBadge(status types.ApprovalStatus) string {
	label := string(status)
	if label == "" {
		label = "UNKNOWN"
	}
	return statusBadgeStyle(status).Render(" " + label + " ")
}

func statusBadgeStyle(status types.ApprovalStatus) lipgloss.Style {
	switch status {
	case types.ApprovalStatusPending:
		return statusPendingStyle
	case types.ApprovalStatusApproved:
		return statusApprovedStyle
	case types.ApprovalStatusRejected:
		return statusRejectedStyle
	case types.ApprovalStatusCancelled:
		return statusCancelledStyle
	case types.ApprovalStatusFinished:
		return statusFinishedStyle
	default:
		return statusUnknownStyle
	}
}
