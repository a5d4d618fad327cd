package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sandeepkv93/tasker/internal/model"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// LoadTasks reads the task file at path. A missing, unreadable or malformed
// file yields an empty store.
func LoadTasks(path string) *TaskStore {
	store, _ := readTasks(path)
	return store
}

// SaveTasks overwrites path with the full pretty-printed snapshot.
func SaveTasks(store *TaskStore, path string) error {
	tasks := store.Tasks()
	payload, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := writeFileAtomic(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write tasks file %s: %w", path, err)
	}
	return nil
}

func readTasks(path string) (*TaskStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewTaskStore(), nil
		}
		return NewTaskStore(), fmt.Errorf("read tasks file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewTaskStore(), nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return NewTaskStore(), fmt.Errorf("decode tasks file: %w", err)
	}
	for i := range tasks {
		tasks[i].Category = defaultCategory(tasks[i].Category)
	}
	return NewTaskStore(tasks...), nil
}

// defaultCategory maps the missing category of older {description, done}
// records to CategoryOther. Unknown non-empty values are kept.
func defaultCategory(c model.Category) model.Category {
	if c == "" {
		return model.CategoryOther
	}
	return c
}

// JSONFile is the default Backend: one flat JSON file.
type JSONFile struct {
	Path    string
	Recover RecoverFunc
}

func NewJSONFile(path string, onRecover RecoverFunc) *JSONFile {
	return &JSONFile{Path: path, Recover: onRecover}
}

func (j *JSONFile) Load(_ context.Context) *TaskStore {
	store, err := readTasks(j.Path)
	if err != nil && j.Recover != nil {
		j.Recover(j.Path, err)
	}
	return store
}

func (j *JSONFile) Save(_ context.Context, store *TaskStore) error {
	return SaveTasks(store, j.Path)
}

func (j *JSONFile) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("storage: empty file path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, ".tmp-"+tempSuffix())
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func tempSuffix() string {
	id, err := ulid.New(ulid.Timestamp(timeNow()), rand.Reader)
	if err != nil {
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToLower(id.String())
}
