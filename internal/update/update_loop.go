package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasker/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.PaletteOpen {
			return m.handlePaletteKey(typed), nil
		}
		if m.Capturing {
			return m.handleQuickAddKey(typed), nil
		}
		if m.HelpVisible && (key.Matches(typed, m.Keys.PageUp) || key.Matches(typed, m.Keys.PageDown)) {
			var cmd tea.Cmd
			m.helpViewport, cmd = m.helpViewport.Update(typed)
			return m, cmd
		}

		switch {
		case key.Matches(typed, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.Keys.Palette):
			m.PaletteOpen = true
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case key.Matches(typed, m.Keys.Help):
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case key.Matches(typed, m.Keys.Add):
			m.Capturing = true
			m.quickAddInput.SetValue("")
			m.quickAddInput.Focus()
			return m, nil
		case key.Matches(typed, m.Keys.Theme):
			return m.setDark(!m.Dark), nil
		case key.Matches(typed, m.Keys.Reload):
			return m.reload(), nil
		}
		return m.handleTaskKey(typed), nil
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ReloadMsg:
		return m.reload(), nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := m.renderCommandPalette()
	if m.HelpVisible {
		right += m.renderHelpView()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tasker | filter: %s | %s", m.Filter, m.themeName()),
		LeftPane:   m.renderTaskView(),
		RightPane:  right,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.ShortHelpView(m.Keys.ShortHelp()),
		Dark:       m.Dark,
	})
}

func (m Model) themeName() string {
	if m.Dark {
		return "dark"
	}
	return "light"
}
