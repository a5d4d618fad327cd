package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/tasker/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteSnapshot(db, nil)
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}

	if err := repo.Save(context.Background(), NewTaskStore(model.NewTask("Roundtrip task", "", model.CategoryWork))); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}

	got := repo.Load(context.Background()).Tasks()
	if len(got) != 1 || got[0].Description != "Roundtrip task" {
		t.Fatalf("unexpected tasks after roundtrip: %#v", got)
	}
}
