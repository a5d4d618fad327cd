package views

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasker/internal/model"
)

type TaskPanelData struct {
	Rows       []Row
	Cursor     int
	Filter     string
	QuickAdd   string
	Capturing  bool
	ProgressUI string
	Ratio      float64
	Done       int
	Total      int
	Overdue    int
	Dark       bool
}

type HelpPanelData struct {
	Markdown string
	HelpView string
	Dark     bool
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", data.Filter))
	if data.Capturing {
		b.WriteString(data.QuickAdd + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %d/%d done (%.0f%%, %s)", data.ProgressUI, data.Done, data.Total, data.Ratio*100, CompletionBand(data.Ratio)))
	if data.Overdue > 0 {
		b.WriteString(fmt.Sprintf(" | overdue: %d", data.Overdue))
	}
	b.WriteString("\n\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for i, r := range data.Rows {
		b.WriteString(RenderTaskLine(r, i == data.Cursor, data.Dark))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	if data.HelpView != "" {
		b.WriteString(data.HelpView + "\n")
	}
	b.WriteString(RenderMarkdown(data.Markdown, data.Dark))
	return strings.TrimSpace(b.String())
}

// RenderLegend lists the category markers in preset order.
func RenderLegend() string {
	parts := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		tok := CategoryToken(c)
		parts = append(parts, tok.Marker+" "+tok.Name)
	}
	return strings.Join(parts, "  ")
}
