package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Cut(text, 0, width-1) + "…"
}

func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := xansi.StringWidth(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

func padLines(lines []string, width int) string {
	if width <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		lineWidth := xansi.StringWidth(line)
		if lineWidth < width {
			line = line + strings.Repeat(" ", width-lineWidth)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

func indentBlock(block string, spaces int) string {
	if spaces <= 0 {
		return block
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
