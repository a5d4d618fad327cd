package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	IsError    bool
	Footer     string
	Dark       bool
}

type palette struct {
	text    lipgloss.Color
	accent  lipgloss.Color
	muted   lipgloss.Color
	ok      lipgloss.Color
	warn    lipgloss.Color
	danger  lipgloss.Color
	border  lipgloss.Color
	surface lipgloss.Color
}

var (
	lightPalette = palette{
		text:    lipgloss.Color("0"),
		accent:  lipgloss.Color("4"),
		muted:   lipgloss.Color("8"),
		ok:      lipgloss.Color("2"),
		warn:    lipgloss.Color("3"),
		danger:  lipgloss.Color("1"),
		border:  lipgloss.Color("7"),
		surface: lipgloss.Color("15"),
	}
	darkPalette = palette{
		text:    lipgloss.Color("15"),
		accent:  lipgloss.Color("12"),
		muted:   lipgloss.Color("8"),
		ok:      lipgloss.Color("10"),
		warn:    lipgloss.Color("11"),
		danger:  lipgloss.Color("9"),
		border:  lipgloss.Color("8"),
		surface: lipgloss.Color("0"),
	}
)

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Dark)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	statusStyle := lipgloss.NewStyle().Foreground(p.ok)
	errorStyle := lipgloss.NewStyle().Foreground(p.danger)
	footerStyle := lipgloss.NewStyle().Foreground(p.muted)

	left := panelStyle.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(46).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// BandColor picks the progress colour for a completion band.
func BandColor(b Band, dark bool) lipgloss.Color {
	p := paletteFor(dark)
	switch b {
	case BandLow:
		return p.danger
	case BandMedium:
		return p.warn
	default:
		return p.ok
	}
}

func RenderTaskLine(r Row, selected, dark bool) string {
	p := paletteFor(dark)
	tok := CategoryToken(r.Category)

	cursor := "  "
	if selected {
		cursor = "> "
	}
	check := "[ ]"
	if r.Done {
		check = "[x]"
	}
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color(tok.Color)).Render(tok.Marker)

	descStyle := lipgloss.NewStyle().Foreground(p.text)
	switch {
	case r.Done:
		descStyle = descStyle.Foreground(p.muted).Strikethrough(true)
	case r.Overdue:
		descStyle = descStyle.Foreground(p.danger).Bold(true)
	}
	if selected {
		descStyle = descStyle.Underline(true)
	}

	line := cursor + check + " " + marker + " " + descStyle.Render(r.Description)
	if r.Deadline != "" {
		due := lipgloss.NewStyle().Foreground(p.muted)
		if r.Overdue {
			due = due.Foreground(p.danger)
		}
		line += " " + due.Render("до "+r.Deadline)
	}
	return line
}

// RenderMarkdown renders md with the glamour style matching the theme and
// falls back to the raw text when rendering fails.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func ProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
