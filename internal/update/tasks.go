package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasker/internal/commands"
	"github.com/sandeepkv93/tasker/internal/storage"
	"github.com/sandeepkv93/tasker/internal/views"
)

const addedMessage = "✅ Задача добавлена!"

// VisibleRows applies the current filter. Rows keep their store positions.
func (m Model) VisibleRows() []views.Row {
	rows := m.svc.ListTasks()
	if m.Filter == commands.FilterAll || m.Filter == "" {
		return rows
	}
	out := make([]views.Row, 0, len(rows))
	for _, r := range rows {
		switch m.Filter {
		case commands.FilterOpen:
			if !r.Done {
				out = append(out, r)
			}
		case commands.FilterDone:
			if r.Done {
				out = append(out, r)
			}
		case commands.FilterOverdue:
			if r.Overdue {
				out = append(out, r)
			}
		}
	}
	return out
}

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	rows := m.VisibleRows()
	switch {
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(rows)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Toggle):
		if len(rows) == 0 {
			return m
		}
		m = m.toggle(rows[m.Cursor].Position)
	case key.Matches(msg, m.Keys.Remove):
		if len(rows) == 0 {
			return m
		}
		m = m.remove(rows[m.Cursor].Position)
	}
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		m.Capturing = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		return m
	case tea.KeyEnter:
		raw := m.quickAddInput.Value()
		m.Capturing = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		if strings.TrimSpace(raw) == "" {
			return m
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		return m.add(*cmd.Add)
	case tea.KeyRunes, tea.KeySpace:
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		return m
	}
	m.quickAddInput, _ = m.quickAddInput.Update(msg)
	return m
}

func (m Model) add(a commands.AddArgs) Model {
	added, err := m.svc.AddTask(m.ctx, a.Description, a.Deadline, a.Category)
	if err != nil {
		return m.fail(err)
	}
	if added {
		m.Status = StatusBar{Text: addedMessage}
	}
	return m
}

func (m Model) toggle(position int) Model {
	if err := m.svc.ToggleTask(m.ctx, position); err != nil {
		return m.fail(positionError(err, position))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("toggled task %d", position)}
	return m.clampCursor()
}

func (m Model) remove(position int) Model {
	if err := m.svc.RemoveTask(m.ctx, position); err != nil {
		return m.fail(positionError(err, position))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("removed task %d", position)}
	return m.clampCursor()
}

func (m Model) setDark(dark bool) Model {
	if err := m.svc.SetDarkMode(m.ctx, dark); err != nil {
		return m.fail(err)
	}
	m.Dark = dark
	m.refreshHelpContent()
	m.Status = StatusBar{Text: "theme: " + m.themeName()}
	return m
}

func (m Model) reload() Model {
	m.svc.Reload(m.ctx)
	if m.themeOverride == "" {
		m.Dark = m.svc.Settings().DarkMode
	}
	m.refreshHelpContent()
	m.Status = StatusBar{Text: fmt.Sprintf("reloaded %d task(s)", len(m.svc.ListTasks()))}
	return m.clampCursor()
}

func (m Model) fail(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	return m
}

func (m Model) clampCursor() Model {
	n := len(m.VisibleRows())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}

func positionError(err error, position int) error {
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		return fmt.Errorf("no task %d", position)
	}
	return err
}

func (m Model) renderTaskView() string {
	stats := m.svc.Stats()
	bar := m.completion
	bar.FullColor = string(views.BandColor(stats.Band, m.Dark))

	quickAdd := ""
	if m.Capturing {
		quickAdd = m.quickAddInput.View()
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Rows:       m.VisibleRows(),
		Cursor:     m.Cursor,
		Filter:     m.Filter,
		QuickAdd:   quickAdd,
		Capturing:  m.Capturing,
		ProgressUI: bar.ViewAs(stats.Ratio),
		Ratio:      stats.Ratio,
		Done:       stats.Done,
		Total:      stats.Total,
		Overdue:    stats.Overdue,
		Dark:       m.Dark,
	})
}
