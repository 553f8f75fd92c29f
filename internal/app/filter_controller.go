package app

import (
	"fmt"
	"strings"

	"foreman/internal/types"
)

type filterStage int

const (
	filterStageColumn filterStage = iota
	filterStageValue
)

// filterAllValue marks the "All" entry that clears a column's filter.
const filterAllValue = "\x00all"

type filterOption struct {
	id    string
	label string
}

// FilterController is the two-step filter menu: pick a column, then pick one
// of its distinct values. Value lists come from the server per column and
// carry record counts.
type FilterController struct {
	active  bool
	stage   filterStage
	columns []types.FilterableColumn
	field   string
	label   string
	options []filterOption
	loading bool
	cursor  int
	offset  int
	height  int
}

func NewFilterController() *FilterController {
	return &FilterController{height: 12}
}

func (f *FilterController) IsOpen() bool {
	return f != nil && f.active
}

func (f *FilterController) Open(columns []types.FilterableColumn) {
	f.active = true
	f.stage = filterStageColumn
	f.columns = columns
	f.field = ""
	f.label = ""
	f.loading = false
	f.cursor = 0
	f.offset = 0
	f.options = f.options[:0]
	for _, col := range columns {
		f.options = append(f.options, filterOption{id: col.Field, label: col.Label})
	}
}

func (f *FilterController) Close() {
	f.active = false
	f.options = nil
	f.field = ""
	f.label = ""
	f.loading = false
}

// EnterValues switches to the value stage for the chosen column; the value
// list arrives later via SetValues.
func (f *FilterController) EnterValues(field, label string) {
	f.stage = filterStageValue
	f.field = field
	f.label = label
	f.loading = true
	f.cursor = 0
	f.offset = 0
	f.options = f.options[:0]
}

func (f *FilterController) SetValues(field string, values []types.FilterValue, activeValue string) {
	if !f.active || f.stage != filterStageValue || field != f.field {
		return
	}
	f.loading = false
	f.options = f.options[:0]
	f.options = append(f.options, filterOption{id: filterAllValue, label: "All"})
	selected := 0
	for i, value := range values {
		label := value.Label
		if label == "" {
			label = value.Value
		}
		if value.Count > 0 {
			label = fmt.Sprintf("%s (%d)", label, value.Count)
		}
		f.options = append(f.options, filterOption{id: value.Value, label: label})
		if activeValue != "" && value.Value == activeValue {
			selected = i + 1
		}
	}
	f.cursor = selected
	f.ensureVisible()
}

func (f *FilterController) Stage() filterStage { return f.stage }
func (f *FilterController) Field() string      { return f.field }
func (f *FilterController) Loading() bool      { return f.loading }

func (f *FilterController) Move(delta int) {
	if len(f.options) == 0 {
		return
	}
	f.cursor = clamp(f.cursor+delta, 0, len(f.options)-1)
	f.ensureVisible()
}

// Selected returns the highlighted option id, or empty when nothing is
// selectable yet.
func (f *FilterController) Selected() (string, string) {
	if f.cursor < 0 || f.cursor >= len(f.options) {
		return "", ""
	}
	opt := f.options[f.cursor]
	return opt.id, opt.label
}

// IsAllSelected reports whether the highlighted value entry is the "All"
// reset row.
func (f *FilterController) IsAllSelected() bool {
	id, _ := f.Selected()
	return id == filterAllValue
}

func (f *FilterController) ensureVisible() {
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+f.height {
		f.offset = f.cursor - f.height + 1
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

func (f *FilterController) View(maxWidth int) string {
	if !f.active {
		return ""
	}
	title := "Filter by column"
	if f.stage == filterStageValue {
		title = "Filter: " + f.label
	}
	width := clamp(maxWidth-4, 24, 48)
	contentWidth := width - 2
	lines := []string{menuHeaderStyle.Render(" " + padToWidth(truncateToWidth(title, contentWidth), contentWidth) + " ")}
	if f.loading {
		lines = append(lines, menuItemStyle.Render(" "+padToWidth("loading values...", contentWidth)+" "))
	} else if len(f.options) == 0 {
		lines = append(lines, menuItemStyle.Render(" "+padToWidth("no options", contentWidth)+" "))
	}
	end := min(len(f.options), f.offset+f.height)
	for i := f.offset; i < end; i++ {
		label := truncateToWidth(f.options[i].label, contentWidth)
		line := " " + padToWidth(label, contentWidth) + " "
		if i == f.cursor {
			lines = append(lines, selectedStyle.Render(line))
		} else {
			lines = append(lines, menuItemStyle.Render(line))
		}
	}
	return panelBorderStyle.Render(strings.Join(lines, "\n"))
}
