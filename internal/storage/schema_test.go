package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasker/internal/model"
)

func TestCheckTasksFileValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := NewTaskStore(
		model.NewTask("buy milk", "", model.CategoryPersonal),
		model.NewTask("report", "01.04.2026", model.CategoryWork),
	)
	if err := SaveTasks(s, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := CheckTasksFile(path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !res.Exists || !res.OK() {
		t.Fatalf("expected valid file, got %+v", res)
	}
}

func TestCheckTasksFileReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	body := `[
  {"description": "ok", "done": false, "deadline": null, "category": "Работа"},
  {"description": "bad date", "done": false, "deadline": "2026-01-01", "category": "Работа"},
  {"description": "bad category", "done": "yes", "category": "Hobby"}
]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := CheckTasksFile(path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.OK() {
		t.Fatal("expected problems")
	}
	joined := make([]string, 0, len(res.Problems))
	for _, p := range res.Problems {
		joined = append(joined, p.String())
	}
	all := strings.Join(joined, "\n")
	for _, loc := range []string{"/2/done", "/2/category"} {
		if !strings.Contains(all, loc) {
			t.Fatalf("expected a problem at %s, got:\n%s", loc, all)
		}
	}
	if strings.Contains(all, "/0/") || strings.Contains(all, "/1/") {
		t.Fatalf("loadable record reported:\n%s", all)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Location != "/1/deadline" {
		t.Fatalf("expected a deadline warning for /1, got %+v", res.Warnings)
	}
}

func TestCheckFileMissingAndInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	res, err := CheckSettingsFile(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("check missing: %v", err)
	}
	if res.Exists || !res.OK() {
		t.Fatalf("missing file should be fine, got %+v", res)
	}

	bad := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err = CheckSettingsFile(bad)
	if err != nil {
		t.Fatalf("check bad: %v", err)
	}
	if res.OK() || !strings.HasPrefix(res.Problems[0].Message, "invalid JSON") {
		t.Fatalf("expected invalid JSON problem, got %+v", res)
	}
}

func TestCheckSettingsFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"dark_mode": true, "font": "mono"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := CheckSettingsFile(path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.OK() {
		t.Fatal("expected additionalProperties problem")
	}
}
