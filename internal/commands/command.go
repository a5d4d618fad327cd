package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasker/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeRemove Type = "rm"
	TypeTheme  Type = "theme"
	TypeShow   Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Show filters understood by /show.
const (
	FilterAll     = "all"
	FilterOpen    = "open"
	FilterDone    = "done"
	FilterOverdue = "overdue"
)

type AddArgs struct {
	Description string
	Deadline    string
	Category    model.Category
}

// PositionArgs carries a 1-based task position.
type PositionArgs struct {
	Position int
}

// ThemeArgs.Mode is "dark", "light" or "toggle".
type ThemeArgs struct {
	Mode string
}

type ShowArgs struct {
	Filter string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *PositionArgs
	Remove *PositionArgs
	Theme  *ThemeArgs
	Show   *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch head {
	case string(TypeAdd):
		return parseAdd(input, args)
	case string(TypeDone), "toggle", "x":
		pos, err := parsePosition(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: &PositionArgs{Position: pos}}, nil
	case string(TypeRemove), "remove", "del":
		pos, err := parsePosition(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &PositionArgs{Position: pos}}, nil
	case string(TypeTheme):
		return parseTheme(input, args)
	case string(TypeShow):
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd pulls optional due:DD.MM.YYYY and cat:<category> tokens out of the
// argument list; everything else is the description.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due := strings.TrimSpace(arg[len("due:"):])
			if _, err := model.ParseDeadline(due); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("deadline must be DD.MM.YYYY, got %q", due)}
			}
			out.Deadline = due
		case strings.HasPrefix(lower, "cat:"):
			c, err := model.ParseCategory(arg[len("cat:"):])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			out.Category = c
		default:
			words = append(words, arg)
		}
	}
	out.Description = strings.TrimSpace(strings.Join(words, " "))
	if out.Description == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a description"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parsePosition(head string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", head)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("task number must be a positive integer, got %q", args[0])}
	}
	return n, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	mode := "toggle"
	if len(args) > 0 {
		mode = strings.ToLower(args[0])
	}
	switch mode {
	case "dark", "light", "toggle":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("theme must be dark, light or toggle, got %q", mode)}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Mode: mode}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a filter"}
	}
	filter := strings.ToLower(args[0])
	switch filter {
	case FilterAll, FilterOpen, FilterDone, FilterOverdue:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", filter)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Filter: filter}}, nil
}
