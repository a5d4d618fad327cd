package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/tasker/internal/model"
)

// SQLiteSnapshot stores the task snapshot in a single SQLite table keyed by
// position. Every Save replaces all rows in one transaction.
type SQLiteSnapshot struct {
	db      *sql.DB
	source  string
	Recover RecoverFunc
}

func NewSQLiteSnapshot(db *sql.DB, onRecover RecoverFunc) (*SQLiteSnapshot, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &SQLiteSnapshot{db: db, source: "sqlite", Recover: onRecover}, nil
}

func OpenSQLite(path string, onRecover RecoverFunc) (*SQLiteSnapshot, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteSnapshot(db, onRecover)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	repo.source = path
	return repo, nil
}

func (r *SQLiteSnapshot) Close() error {
	return r.db.Close()
}

func (r *SQLiteSnapshot) Load(ctx context.Context) *TaskStore {
	tasks, err := r.listTasks(ctx)
	if err != nil {
		if r.Recover != nil {
			r.Recover(r.source, err)
		}
		return NewTaskStore()
	}
	return NewTaskStore(tasks...)
}

func (r *SQLiteSnapshot) Save(ctx context.Context, store *TaskStore) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, description, done, deadline, category)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range store.Tasks() {
		if _, err := stmt.ExecContext(ctx, i, t.Description, boolInt(t.Done), nullString(t.Deadline), string(t.Category)); err != nil {
			return fmt.Errorf("insert task %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshot) listTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT description, done, deadline, category
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var done int
	var deadline sql.NullString
	var category string
	if err := s.Scan(&out.Description, &done, &deadline, &category); err != nil {
		return model.Task{}, err
	}
	out.Done = done == 1
	if deadline.Valid {
		d := deadline.String
		out.Deadline = &d
	}
	out.Category = defaultCategory(model.Category(category))
	return out, nil
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
