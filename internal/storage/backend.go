package storage

import (
	"context"
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("storage: index out of range")

// IndexError reports a task index outside the current store.
// It satisfies errors.Is(err, ErrIndexOutOfRange).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("storage: index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// RecoverFunc is told about load failures that were absorbed into an empty
// store or default settings.
type RecoverFunc func(source string, err error)

// Backend persists full task snapshots. Load never fails: a missing or
// corrupt source yields an empty store. Save must report every failure.
type Backend interface {
	Load(ctx context.Context) *TaskStore
	Save(ctx context.Context, store *TaskStore) error
	Close() error
}
