package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DeadlineLayout is the on-disk deadline format (DD.MM.YYYY).
const DeadlineLayout = "02.01.2006"

var (
	ErrInvalidCategory = errors.New("model: invalid task category")
	ErrInvalidDeadline = errors.New("model: invalid task deadline")
)

type Category string

const (
	CategoryPersonal Category = "Личное"
	CategoryWork     Category = "Работа"
	CategoryStudy    Category = "Учёба"
	CategoryProject  Category = "Проект"
	CategoryOther    Category = "Другое"
)

var categoryAliases = map[string]Category{
	"personal": CategoryPersonal,
	"work":     CategoryWork,
	"study":    CategoryStudy,
	"project":  CategoryProject,
	"other":    CategoryOther,
}

// Categories returns the presets in display order.
func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryStudy, CategoryProject, CategoryOther}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryStudy, CategoryProject, CategoryOther:
		return true
	default:
		return false
	}
}

// Alias returns the English input alias of a preset, or "" for unknown values.
func (c Category) Alias() string {
	for alias, preset := range categoryAliases {
		if preset == c {
			return alias
		}
	}
	return ""
}

// ParseCategory accepts a stored preset value or its English alias,
// case-insensitively. "е" matches "ё", so "учеба" is Учёба.
func ParseCategory(raw string) (Category, error) {
	folded := foldCategory(raw)
	if folded == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	if c, ok := categoryAliases[folded]; ok {
		return c, nil
	}
	for _, c := range Categories() {
		if foldCategory(string(c)) == folded {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

func foldCategory(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "ё", "е")
}

type Task struct {
	Description string   `json:"description" yaml:"description"`
	Done        bool     `json:"done" yaml:"done"`
	Deadline    *string  `json:"deadline" yaml:"deadline"`
	Category    Category `json:"category" yaml:"category"`
}

// NewTask builds a pending task. An empty deadline means no deadline and an
// empty category falls back to CategoryOther. The description is kept as is.
func NewTask(description, deadline string, category Category) Task {
	t := Task{
		Description: description,
		Category:    category,
	}
	if deadline != "" {
		d := deadline
		t.Deadline = &d
	}
	if t.Category == "" {
		t.Category = CategoryOther
	}
	return t
}

func (t Task) HasDeadline() bool {
	return t.Deadline != nil && *t.Deadline != ""
}

func (t Task) DeadlineText() string {
	if t.Deadline == nil {
		return ""
	}
	return *t.Deadline
}

// IsOverdue reports whether a pending task has a parseable deadline strictly
// before the calendar date of today. Unparseable deadlines never count.
func (t Task) IsOverdue(today time.Time) bool {
	if t.Done || !t.HasDeadline() {
		return false
	}
	due, err := time.ParseInLocation(DeadlineLayout, strings.TrimSpace(*t.Deadline), today.Location())
	if err != nil {
		return false
	}
	return due.Before(startOfDay(today))
}

func ParseDeadline(raw string) (time.Time, error) {
	due, err := time.Parse(DeadlineLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, raw)
	}
	return due, nil
}

func FormatDeadline(tm time.Time) string {
	return tm.Format(DeadlineLayout)
}

func startOfDay(tm time.Time) time.Time {
	y, m, d := tm.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, tm.Location())
}
