package app

import (
	"fmt"
	"strings"

	"foreman/internal/types"
)

const emptyTableText = "No work orders found matching the current filters."

type tableColumn struct {
	field string
	title string
	width int
	flex  bool
}

// tableColumns defines the visible columns. The field names double as the
// server-side sort keys.
var tableColumns = []tableColumn{
	{field: "wo_id", title: "WO ID", width: 12},
	{field: "description", title: "Description", flex: true},
	{field: "type_id", title: "Type", width: 10},
	{field: "scheduled_start", title: "Scheduled", width: 18},
	{field: "service_level", title: "SL", width: 4},
	{field: "approval_status", title: "Status", width: 12},
}

func tableHeaderLine(width int, sortBy, sortDirection string, hasUserSorted bool) string {
	cells := make([]string, 0, len(tableColumns))
	for _, col := range tableColumns {
		title := col.title
		if hasUserSorted && col.field == sortBy {
			if sortDirection == sortDescending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cells = append(cells, padToWidth(truncateToWidth(title, columnWidth(col, width)), columnWidth(col, width)))
	}
	return tableHeaderStyle.Render(padToWidth(" "+strings.Join(cells, " ")+" ", width))
}

func tableRowLine(wo *types.WorkOrder, width int, selected bool) string {
	cells := make([]string, 0, len(tableColumns))
	for _, col := range tableColumns {
		w := columnWidth(col, width)
		cells = append(cells, padToWidth(truncateToWidth(cellText(wo, col.field), w), w))
	}
	line := " " + strings.Join(cells, " ") + " "
	if selected {
		return selectedStyle.Render(padToWidth(line, width))
	}
	if !wo.Active {
		return rowMutedStyle.Render(padToWidth(line, width))
	}
	return rowStyle.Render(padToWidth(line, width))
}

func cellText(wo *types.WorkOrder, field string) string {
	switch field {
	case "wo_id":
		return wo.ID
	case "description":
		return wo.Description
	case "type_id":
		return wo.TypeID
	case "scheduled_start":
		if wo.ScheduledStart == nil {
			return ""
		}
		return wo.ScheduledStart.Local().Format("02 Jan 06 15:04")
	case "service_level":
		if wo.ServiceLevel == 0 {
			return ""
		}
		return fmt.Sprintf("%d", wo.ServiceLevel)
	case "approval_status":
		return strings.ToUpper(strings.TrimSpace(wo.ApprovalStatus))
	default:
		return ""
	}
}

// columnWidth resolves the flex column against the remaining width.
func columnWidth(col tableColumn, total int) int {
	if !col.flex {
		return col.width
	}
	used := 2
	flexCount := 0
	for _, other := range tableColumns {
		if other.flex {
			flexCount++
			continue
		}
		used += other.width + 1
	}
	if flexCount == 0 {
		return col.width
	}
	return max(8, (total-used)/flexCount-1)
}

func skeletonLines(width, rows int) []string {
	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		cells := make([]string, 0, len(tableColumns))
		for _, col := range tableColumns {
			w := columnWidth(col, width)
			cells = append(cells, strings.Repeat("░", max(1, w-2))+"  ")
		}
		lines = append(lines, skeletonStyle.Render(" "+strings.Join(cells, " ")))
	}
	return lines
}

func paginationLine(page, pageCount, total, width int) string {
	text := fmt.Sprintf("page %d of %d · %d work orders", page, pageCount, total)
	return statusStyle.Render(padToWidth(" "+text, width))
}
