// Package service is the contract the presentation shells call into. It owns
// the single in-memory TaskStore and writes every mutation through to the
// backend before returning.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasker/internal/logging"
	"github.com/sandeepkv93/tasker/internal/model"
	"github.com/sandeepkv93/tasker/internal/storage"
	"github.com/sandeepkv93/tasker/internal/views"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Stats struct {
	Total   int
	Done    int
	Overdue int
	Ratio   float64
	Band    views.Band
}

type Options struct {
	SettingsPath string
	Logger       *log.Logger
	Now          func() time.Time
}

type Service struct {
	backend      storage.Backend
	settingsPath string
	store        *storage.TaskStore
	settings     storage.Settings
	logger       *log.Logger
	now          func() time.Time
}

// New loads tasks from backend and settings from opts.SettingsPath. Both
// loads fail soft.
func New(ctx context.Context, backend storage.Backend, opts Options) *Service {
	s := &Service{
		backend:      backend,
		settingsPath: opts.SettingsPath,
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.Reload(ctx)
	return s
}

// Reload replaces the in-memory state with what is on disk.
func (s *Service) Reload(ctx context.Context) {
	s.store = s.backend.Load(ctx)
	settings, err := storage.ReadSettings(s.settingsPath)
	if err != nil {
		s.logger.Warn("settings reset to defaults", "path", s.settingsPath, "err", err)
	}
	s.settings = settings
	s.logger.Debug("state loaded", "tasks", s.store.Len(), "dark_mode", s.settings.DarkMode)
}

// AddTask appends a task unless the description is blank once trimmed, in
// which case it reports false and does nothing. A non-blank description is
// stored exactly as given.
func (s *Service) AddTask(ctx context.Context, description, deadline string, category model.Category) (bool, error) {
	if strings.TrimSpace(description) == "" {
		s.logger.Debug("blank description ignored")
		return false, nil
	}
	task := model.NewTask(description, strings.TrimSpace(deadline), category)
	err := s.mutate(ctx, "add", func(store *storage.TaskStore) error {
		store.Append(task)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) ListTasks() []views.Row {
	return views.Rows(s.store.Tasks(), s.now())
}

// Task returns the task at a 1-based position.
func (s *Service) Task(position int) (model.Task, error) {
	return s.store.At(position - 1)
}

func (s *Service) ToggleTask(ctx context.Context, position int) error {
	return s.mutate(ctx, "toggle", func(store *storage.TaskStore) error {
		return store.ToggleDone(position - 1)
	})
}

func (s *Service) RemoveTask(ctx context.Context, position int) error {
	return s.mutate(ctx, "remove", func(store *storage.TaskStore) error {
		return store.Remove(position - 1)
	})
}

func (s *Service) Settings() storage.Settings {
	return s.settings
}

func (s *Service) SetDarkMode(_ context.Context, dark bool) error {
	next := s.settings
	next.DarkMode = dark
	if err := storage.SaveSettings(next, s.settingsPath); err != nil {
		return err
	}
	s.settings = next
	s.logger.Debug("settings saved", "dark_mode", dark)
	return nil
}

func (s *Service) Stats() Stats {
	tasks := s.store.Tasks()
	ratio := views.CompletionRatio(tasks)
	return Stats{
		Total:   len(tasks),
		Done:    views.CountDone(tasks),
		Overdue: views.CountOverdue(views.Rows(tasks, s.now())),
		Ratio:   ratio,
		Band:    views.CompletionBand(ratio),
	}
}

// Export writes the current snapshot in the given format.
func (s *Service) Export(w io.Writer, format string) error {
	tasks := s.store.Tasks()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("service: unsupported export format %q", format)
	}
}

// mutate applies fn to a copy of the store and only adopts it once the
// backend accepted the new snapshot.
func (s *Service) mutate(ctx context.Context, op string, fn func(*storage.TaskStore) error) error {
	next := s.store.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, next); err != nil {
		s.logger.Error("save failed", "op", op, "err", err)
		return fmt.Errorf("save after %s: %w", op, err)
	}
	s.store = next
	s.logger.Debug("tasks saved", "op", op, "tasks", next.Len())
	return nil
}
