package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasker/internal/config"
	"github.com/sandeepkv93/tasker/internal/model"
	"github.com/sandeepkv93/tasker/internal/service"
	"github.com/sandeepkv93/tasker/internal/storage"
	"github.com/sandeepkv93/tasker/internal/update"
	"github.com/sandeepkv93/tasker/internal/views"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const addedMessage = "✅ Задача добавлена!"

var errNotTerminal = errors.New("tui: stdout is not a terminal")

func newAddCmd(a *app) *cobra.Command {
	var deadline, category string
	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			var cat model.Category
			if strings.TrimSpace(category) != "" {
				c, err := model.ParseCategory(category)
				if err != nil {
					return &UsageError{Err: err}
				}
				cat = c
			}
			deadline = strings.TrimSpace(deadline)
			if deadline != "" {
				if _, err := model.ParseDeadline(deadline); err != nil {
					a.logger.Warn("deadline is not DD.MM.YYYY, stored as given", "deadline", deadline)
				}
			}
			added, err := a.svc.AddTask(cmd.Context(), strings.Join(args, " "), deadline, cat)
			if err != nil {
				return err
			}
			if added {
				_, _ = fmt.Fprintln(a.stdout, addedMessage)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline as DD.MM.YYYY")
	cmd.Flags().StringVar(&category, "category", "", categoryHelp())
	return cmd
}

func categoryHelp() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, c.Alias())
	}
	return "one of " + strings.Join(names, ", ") + " (default other)"
}

func newListCmd(a *app) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			for _, r := range a.svc.ListTasks() {
				line := views.FormatListLine(r)
				if long {
					line = views.FormatLongLine(r)
				}
				_, _ = fmt.Fprintln(a.stdout, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show deadline, category and overdue flag")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <N>",
		Short: "Toggle the done flag of task N",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.ToggleTask(cmd.Context(), pos); err != nil {
				return err
			}
			task, _ := a.svc.Task(pos)
			mark := " "
			if task.Done {
				mark = "x"
			}
			_, _ = fmt.Fprintf(a.stdout, "%d. [%s] %s\n", pos, mark, task.Description)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <N>",
		Aliases: []string{"remove"},
		Short:   "Remove task N",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			task, err := a.svc.Task(pos)
			if err != nil {
				return err
			}
			if err := a.svc.RemoveTask(cmd.Context(), pos); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "removed: %s\n", task.Description)
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			s := a.svc.Stats()
			_, _ = fmt.Fprintf(a.stdout, "done: %d/%d (%.0f%%, %s)\n", s.Done, s.Total, s.Ratio*100, s.Band)
			_, _ = fmt.Fprintf(a.stdout, "overdue: %d\n", s.Overdue)
			_, _ = fmt.Fprintln(a.stdout, views.ProgressBar(s.Ratio, 20))
			return nil
		},
	}
}

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the dark mode setting",
		Args:      maxArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dark := a.svc.Settings().DarkMode
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "dark":
					dark = true
				case "light":
					dark = false
				case "toggle":
					dark = !dark
				default:
					return usagef("theme must be dark, light or toggle, got %q", args[0])
				}
				if err := a.svc.SetDarkMode(cmd.Context(), dark); err != nil {
					return err
				}
			}
			if dark {
				_, _ = fmt.Fprintln(a.stdout, "dark")
			} else {
				_, _ = fmt.Fprintln(a.stdout, "light")
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the tasks and settings files",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			var results []storage.CheckResult
			if a.cfg.Backend == config.BackendSQLite {
				_, _ = fmt.Fprintf(a.stdout, "skipped %s (tasks are stored in %s)\n", a.cfg.TasksPath(), a.cfg.DBPath())
			} else {
				res, err := storage.CheckTasksFile(a.cfg.TasksPath())
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			res, err := storage.CheckSettingsFile(a.cfg.SettingsPath())
			if err != nil {
				return err
			}
			results = append(results, res)

			failed := false
			for _, r := range results {
				switch {
				case !r.Exists:
					_, _ = fmt.Fprintf(a.stdout, "missing %s (defaults apply)\n", r.Path)
				case r.OK():
					_, _ = fmt.Fprintf(a.stdout, "ok %s\n", r.Path)
				default:
					failed = true
					_, _ = fmt.Fprintf(a.stdout, "invalid %s\n", r.Path)
					for _, p := range r.Problems {
						_, _ = fmt.Fprintf(a.stdout, "  %s\n", p)
					}
				}
				for _, w := range r.Warnings {
					_, _ = fmt.Fprintf(a.stdout, "  warning %s\n", w)
				}
			}
			if failed {
				return ErrCheckFailed
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON or YAML to stdout",
		Args:  exactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			switch strings.ToLower(format) {
			case service.FormatJSON, service.FormatYAML:
			default:
				return usagef("format must be json or yaml, got %q", format)
			}
			return a.svc.Export(a.stdout, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", service.FormatJSON, "json or yaml")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal interface",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f, ok := a.stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
				return &UsageError{Err: errNotTerminal}
			}
			m := update.NewModel(cmd.Context(), a.svc, update.Options{
				Theme:         a.cfg.Theme,
				ProgressWidth: a.cfg.ProgressWidth,
			})
			program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()), tea.WithOutput(a.stdout))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}
