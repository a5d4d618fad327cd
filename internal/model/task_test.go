package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaskKeepsDescription(t *testing.T) {
	for _, desc := range []string{"buy milk", "  padded  ", "купить хлеб", "x"} {
		task := NewTask(desc, "", "")
		if task.Description != desc {
			t.Fatalf("description = %q, want %q", task.Description, desc)
		}
		if task.Done {
			t.Fatalf("new task %q must not be done", desc)
		}
		if task.HasDeadline() {
			t.Fatalf("new task %q must not have a deadline", desc)
		}
		if task.Category != CategoryOther {
			t.Fatalf("default category = %q, want %q", task.Category, CategoryOther)
		}
	}
}

func TestNewTaskWithDeadlineAndCategory(t *testing.T) {
	task := NewTask("write report", "31.12.2026", CategoryWork)
	if task.DeadlineText() != "31.12.2026" {
		t.Fatalf("unexpected deadline: %q", task.DeadlineText())
	}
	if task.Category != CategoryWork {
		t.Fatalf("unexpected category: %q", task.Category)
	}
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 2, 9, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		name     string
		done     bool
		deadline string
		want     bool
	}{
		{"past deadline", false, "08.02.2026", true},
		{"same day", false, "09.02.2026", false},
		{"future deadline", false, "10.02.2026", false},
		{"done with past deadline", true, "01.01.2020", false},
		{"unparseable", false, "tomorrow", false},
		{"wrong layout", false, "2026-02-01", false},
		{"no deadline", false, "", false},
	}
	for _, tc := range cases {
		task := NewTask("task", tc.deadline, CategoryPersonal)
		task.Done = tc.done
		if got := task.IsOverdue(today); got != tc.want {
			t.Fatalf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsOverdueUsesTodayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-02-09 01:00 in UTC+10 is still 2026-02-08 in UTC.
	today := time.Date(2026, 2, 9, 1, 0, 0, 0, loc)
	task := NewTask("task", "08.02.2026", "")
	if !task.IsOverdue(today) {
		t.Fatal("expected deadline of the previous local day to be overdue")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"work":    CategoryWork,
		" Study ": CategoryStudy,
		"Проект":  CategoryProject,
		"личное":  CategoryPersonal,
		"OTHER":   CategoryOther,
		"учеба":   CategoryStudy,
		"УЧЁБА":   CategoryStudy,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseCategory("hobby"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := ParseCategory("  "); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory for blank input, got %v", err)
	}
}

func TestCategoryValidity(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("preset %q reported invalid", c)
		}
		if c.Alias() == "" {
			t.Fatalf("preset %q has no alias", c)
		}
	}
	if Category("Hobby").IsValid() {
		t.Fatal("unknown category reported valid")
	}
}

func TestParseDeadline(t *testing.T) {
	due, err := ParseDeadline("05.03.2026")
	if err != nil {
		t.Fatalf("parse deadline: %v", err)
	}
	if due.Year() != 2026 || due.Month() != time.March || due.Day() != 5 {
		t.Fatalf("unexpected date: %v", due)
	}
	if FormatDeadline(due) != "05.03.2026" {
		t.Fatalf("format roundtrip failed: %q", FormatDeadline(due))
	}
	if _, err := ParseDeadline("32.01.2026"); !errors.Is(err, ErrInvalidDeadline) {
		t.Fatalf("expected ErrInvalidDeadline, got %v", err)
	}
}
