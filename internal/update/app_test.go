package update

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasker/internal/commands"
	"github.com/sandeepkv93/tasker/internal/model"
	"github.com/sandeepkv93/tasker/internal/service"
	"github.com/sandeepkv93/tasker/internal/storage"
)

type fixture struct {
	svc          *service.Service
	tasksPath    string
	settingsPath string
}

func newFixture(t *testing.T, tasks ...model.Task) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		tasksPath:    filepath.Join(dir, "tasks.json"),
		settingsPath: filepath.Join(dir, "settings.json"),
	}
	if len(tasks) > 0 {
		if err := storage.SaveTasks(storage.NewTaskStore(tasks...), f.tasksPath); err != nil {
			t.Fatalf("seed tasks: %v", err)
		}
	}
	f.svc = service.New(context.Background(), storage.NewJSONFile(f.tasksPath, nil), service.Options{
		SettingsPath: f.settingsPath,
		Now:          func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	})
	return f
}

func (f fixture) model() Model {
	return NewModel(context.Background(), f.svc, Options{})
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m = press(t, m, runes(string(r)))
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newFixture(t).model()
	if m.Filter != commands.FilterAll {
		t.Fatalf("expected default filter %q, got %q", commands.FilterAll, m.Filter)
	}
	if m.Dark {
		t.Fatal("expected light theme by default")
	}
	if m.Capturing || m.PaletteOpen || m.HelpVisible {
		t.Fatalf("unexpected initial modes: %+v", m)
	}
}

func TestNewModelThemeOverride(t *testing.T) {
	f := newFixture(t)
	m := NewModel(context.Background(), f.svc, Options{Theme: "dark"})
	if !m.Dark {
		t.Fatal("theme override must force dark mode")
	}
	if f.svc.Settings().DarkMode {
		t.Fatal("theme override must not persist")
	}
}

func TestQuickAddPersistsTask(t *testing.T) {
	f := newFixture(t)
	m := press(t, f.model(), runes("a"))
	if !m.Capturing {
		t.Fatal("expected capture mode after a")
	}
	m = typeText(t, m, "buy milk due:01.06.2024 cat:personal")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Capturing {
		t.Fatal("capture mode must close on enter")
	}
	if m.Status.Text != addedMessage {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	persisted := storage.LoadTasks(f.tasksPath)
	if persisted.Len() != 1 {
		t.Fatalf("expected 1 persisted task, got %d", persisted.Len())
	}
	task, _ := persisted.At(0)
	if task.Description != "buy milk" || task.DeadlineText() != "01.06.2024" || task.Category != model.CategoryPersonal {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestQuickAddBlankIsIgnored(t *testing.T) {
	f := newFixture(t)
	m := press(t, f.model(), runes("a"))
	m = typeText(t, m, "   ")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.VisibleRows()) != 0 {
		t.Fatal("blank quick add must not create a task")
	}
	if m.Status.IsError {
		t.Fatalf("blank quick add must be silent, got %+v", m.Status)
	}
}

func TestToggleAndRemoveSelectedTask(t *testing.T) {
	f := newFixture(t, model.NewTask("one", "", ""), model.NewTask("two", "", ""))
	m := f.model()

	m = press(t, m, runes("j"))
	if m.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.Cursor)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	rows := m.VisibleRows()
	if rows[0].Done || !rows[1].Done {
		t.Fatalf("expected only task 2 done: %+v", rows)
	}

	m = press(t, m, runes("d"))
	rows = m.VisibleRows()
	if len(rows) != 1 || rows[0].Description != "one" {
		t.Fatalf("unexpected rows after remove: %+v", rows)
	}
	if m.Cursor != 0 {
		t.Fatalf("cursor must be clamped, got %d", m.Cursor)
	}
	if storage.LoadTasks(f.tasksPath).Len() != 1 {
		t.Fatal("remove was not persisted")
	}
}

func TestTaskKeysOnEmptyListAreNoops(t *testing.T) {
	m := newFixture(t).model()
	m = press(t, m, runes("x"))
	m = press(t, m, runes("d"))
	m = press(t, m, runes("k"))
	if m.Status.IsError || m.Cursor != 0 {
		t.Fatalf("unexpected state: cursor=%d status=%+v", m.Cursor, m.Status)
	}
}

func TestPaletteCommands(t *testing.T) {
	f := newFixture(t, model.NewTask("old", "01.01.2024", ""), model.NewTask("new", "", ""))
	m := f.model()

	m = press(t, m, runes("/"))
	if !m.PaletteOpen {
		t.Fatal("expected palette open")
	}
	m = typeText(t, m, "show overdue")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.PaletteOpen {
		t.Fatal("palette must close after enter")
	}
	rows := m.VisibleRows()
	if m.Filter != commands.FilterOverdue || len(rows) != 1 || rows[0].Position != 1 {
		t.Fatalf("unexpected filtered rows: filter=%s rows=%+v", m.Filter, rows)
	}

	m = press(t, m, runes("/"))
	m = typeText(t, m, "done 2")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	task, _ := f.svc.Task(2)
	if !task.Done {
		t.Fatalf("expected task 2 done, status=%+v", m.Status)
	}

	m = press(t, m, runes("/"))
	m = typeText(t, m, "rm 9")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task 9") {
		t.Fatalf("expected out of range error, got %+v", m.Status)
	}
}

func TestPaletteParseErrorAndEscape(t *testing.T) {
	m := newFixture(t).model()
	m = press(t, m, runes("/"))
	m = typeText(t, m, "bogus")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError {
		t.Fatalf("expected parse error status, got %+v", m.Status)
	}

	m = press(t, m, runes("/"))
	m = typeText(t, m, "q")
	if m.Quitting {
		t.Fatal("q inside the palette must not quit")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.PaletteOpen {
		t.Fatal("esc must close the palette")
	}
}

func TestThemeTogglePersists(t *testing.T) {
	f := newFixture(t)
	m := press(t, f.model(), runes("t"))
	if !m.Dark {
		t.Fatal("expected dark mode after t")
	}
	if !storage.LoadSettings(f.settingsPath).DarkMode {
		t.Fatal("dark mode must be persisted")
	}

	m = press(t, m, runes("/"))
	m = typeText(t, m, "theme light")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Dark || storage.LoadSettings(f.settingsPath).DarkMode {
		t.Fatal("expected light mode after /theme light")
	}
}

func TestReloadPicksUpFileChanges(t *testing.T) {
	f := newFixture(t)
	m := f.model()
	if err := storage.SaveTasks(storage.NewTaskStore(model.NewTask("external", "", "")), f.tasksPath); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated, _ := m.Update(ReloadMsg{})
	m = updated.(Model)
	if len(m.VisibleRows()) != 1 {
		t.Fatalf("expected reloaded task, status=%+v", m.Status)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newFixture(t).model()
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestHelpToggleAndView(t *testing.T) {
	f := newFixture(t, model.NewTask("write tests", "", model.CategoryWork))
	m := press(t, f.model(), runes("?"))
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	view := m.View()
	for _, want := range []string{"tasker", "filter: all", "write tests"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	m = press(t, m, runes("?"))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestQuitKey(t *testing.T) {
	m := newFixture(t).model()
	updated, cmd := m.Update(runes("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit command")
	}
}
