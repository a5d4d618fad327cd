package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tasker/internal/commands"
	"github.com/sandeepkv93/tasker/internal/service"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Remove   key.Binding
	Add      key.Binding
	Theme    key.Binding
	Reload   key.Binding
	Palette  key.Binding
	Help     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "quick add")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "commands")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll help")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Remove, k.Add, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Remove},
		{k.Add, k.Theme, k.Reload, k.Palette},
		{k.Help, k.PageUp, k.PageDown, k.Quit},
	}
}

type Options struct {
	// Theme forces "dark" or "light" without persisting it.
	Theme         string
	ProgressWidth int
}

type Model struct {
	svc *service.Service
	ctx context.Context

	Keys        KeyMap
	Cursor      int
	Filter      string
	Dark        bool
	Capturing   bool
	PaletteOpen bool
	HelpVisible bool
	Status      StatusBar
	Quitting    bool
	LastError   error

	quickAddInput textinput.Model
	commandInput  textinput.Model
	completion    progress.Model
	helpModel     help.Model
	helpViewport  viewport.Model
	progressWidth int
	themeOverride string
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg re-reads tasks and settings from disk.
type ReloadMsg struct{}

func NewModel(ctx context.Context, svc *service.Service, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		svc:           svc,
		ctx:           ctx,
		Keys:          DefaultKeyMap(),
		Filter:        commands.FilterAll,
		Dark:          svc.Settings().DarkMode,
		progressWidth: opts.ProgressWidth,
		themeOverride: opts.Theme,
	}
	switch opts.Theme {
	case "dark":
		m.Dark = true
	case "light":
		m.Dark = false
	}
	if m.progressWidth <= 0 {
		m.progressWidth = 40
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "description due:DD.MM.YYYY cat:work"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.completion = progress.New(progress.WithWidth(m.progressWidth), progress.WithoutPercentage())
	m.helpModel = help.New()
	m.helpModel.ShowAll = true

	m.helpViewport = viewport.New(44, 14)
	m.refreshHelpContent()
}
