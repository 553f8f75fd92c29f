package app

import (
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	return view
}

func (m *Model) render() string {
	width := max(minTableWidth, m.width)
	height := max(16, m.height)
	switch m.mode {
	case uiModeLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			statusStyle.Render(m.loader.View()+" restoring session..."))
	case uiModeSignIn:
		return m.signIn.View(width, height)
	}
	return m.tableView(width, height)
}

func (m *Model) tableView(width, height int) string {
	var b strings.Builder
	b.WriteString(m.headerLine(width))
	b.WriteString("\n")
	b.WriteString(m.searchLine(width))
	b.WriteString("\n")
	b.WriteString(m.filterLine(width))
	b.WriteString("\n")

	contentHeight := max(3, height-8)
	b.WriteString(m.contentRegion(width, contentHeight))
	b.WriteString("\n")
	b.WriteString(paginationLine(m.query.Page(), m.query.PageCount(), m.query.TotalCount(), width))
	b.WriteString("\n")
	b.WriteString(m.helpLine(width))
	toast := m.toastLine(width)
	if toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
	}
	return b.String()
}

func (m *Model) headerLine(width int) string {
	left := headerStyle.Render(" Work Order Approvals")
	right := ""
	if user := m.session.User(); user != nil {
		right = statusStyle.Render(user.DisplayName() + " ")
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) searchLine(width int) string {
	label := "search "
	if m.searchFocused {
		label = fieldLabelStyle.Render(label)
	} else {
		label = statusStyle.Render(label)
	}
	line := " " + label + m.searchInput.View()
	if m.loading {
		line += "  " + statusStyle.Render(m.loader.View()+" loading")
	}
	return truncateToWidth(line, width)
}

func (m *Model) filterLine(width int) string {
	filters := m.query.Filters()
	if len(filters) == 0 && !m.query.HasUserSorted() {
		return statusStyle.Render(" no filters")
	}
	parts := make([]string, 0, len(filters)+1)
	fields := make([]string, 0, len(filters))
	for field := range filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		parts = append(parts, field+"="+filters[field])
	}
	if m.query.HasUserSorted() {
		parts = append(parts, "sort:"+m.query.SortBy()+" "+m.query.SortDirection())
	}
	return truncateToWidth(statusStyle.Render(" "+strings.Join(parts, " · ")), width)
}

func (m *Model) contentRegion(width, height int) string {
	overlay := ""
	switch {
	case m.confirm.IsOpen():
		block, _ := m.confirm.View(width, height)
		overlay = block
	case m.chat.IsOpen():
		overlay = m.chat.View()
	case m.filterMenu.IsOpen():
		overlay = m.filterMenu.View(width)
	case m.sortMenuOpen:
		overlay = m.sortMenuView()
	case m.popup.IsOpen():
		overlay = m.popup.View(m.acks)
	}
	if overlay != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	}

	lines := make([]string, 0, height)
	lines = append(lines, tableHeaderLine(width, m.query.SortBy(), m.query.SortDirection(), m.query.HasUserSorted()))
	rows := height - 1
	switch {
	case m.loading && len(m.workOrders) == 0:
		lines = append(lines, skeletonLines(width, min(rows, 8))...)
	case len(m.workOrders) == 0:
		lines = append(lines, "", emptyStateStyle.Render("  "+emptyTableText))
	default:
		end := min(len(m.workOrders), m.rowOffset+rows)
		for i := m.rowOffset; i < end; i++ {
			lines = append(lines, tableRowLine(m.workOrders[i], width, i == m.cursor))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return padLines(lines[:height], width)
}

func (m *Model) sortMenuView() string {
	contentWidth := 30
	lines := []string{menuHeaderStyle.Render(" " + padToWidth("Sort by column", contentWidth) + " ")}
	for i, col := range tableColumns {
		label := col.title
		if m.query.HasUserSorted() && m.query.SortBy() == col.field {
			if m.query.SortDirection() == sortDescending {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		line := " " + padToWidth(truncateToWidth(label, contentWidth), contentWidth) + " "
		if i == m.sortMenuCursor {
			lines = append(lines, selectedStyle.Render(line))
		} else {
			lines = append(lines, menuItemStyle.Render(line))
		}
	}
	return panelBorderStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) helpLine(width int) string {
	help := " ↑/↓ select · ←/→ page · enter details · / search · f filter · s sort · x clear · r refresh · c copy id · ctrl+l sign out · q quit"
	return helpStyle.Render(truncateToWidth(help, width))
}
