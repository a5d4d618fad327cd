package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasker/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case tea.KeyEnter:
		m = m.executePaletteCommand(m.commandInput.Value())
	case tea.KeyRunes, tea.KeySpace:
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
	}
	return m
}

func (m Model) closePalette() Model {
	m.PaletteOpen = false
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand(input string) Model {
	m = m.closePalette()
	raw := strings.TrimSpace(input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m = m.add(a)
			return commands.Result{Message: m.Status.Text}, m.errorFromStatus()
		},
		Done: func(p commands.PositionArgs) (commands.Result, error) {
			m = m.toggle(p.Position)
			return commands.Result{Message: m.Status.Text}, m.errorFromStatus()
		},
		Remove: func(p commands.PositionArgs) (commands.Result, error) {
			m = m.remove(p.Position)
			return commands.Result{Message: m.Status.Text}, m.errorFromStatus()
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			var dark bool
			switch t.Mode {
			case "dark":
				dark = true
			case "light":
			default:
				dark = !m.Dark
			}
			m = m.setDark(dark)
			return commands.Result{Message: m.Status.Text}, m.errorFromStatus()
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			m.Filter = s.Filter
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing %s (%d)", s.Filter, len(m.VisibleRows()))}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) errorFromStatus() error {
	if m.Status.IsError {
		return m.LastError
	}
	return nil
}

func (m Model) renderCommandPalette() string {
	if !m.PaletteOpen {
		return ""
	}
	return "command:\n" + m.commandInput.View() + "\n\n"
}
