// Package store persists completed enumeration runs.
//
// The CLI saves runs to MongoDB when --mongo-uri is given so that results
// of different machines can be compared later; the API server reads them
// back. [Memory] keeps runs in process and backs the tests.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/report"
)

// Store saves and retrieves runs by ID.
type Store interface {
	// Save inserts run, replacing any run with the same ID.
	Save(ctx context.Context, run *report.Run) error

	// Get returns the run with the given ID, or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*report.Run, error)

	// List returns up to limit runs, newest first. An empty solid lists
	// runs of every solid. Backends may leave the entries of listed runs
	// out; use Get for the full run.
	List(ctx context.Context, solid string, limit int) ([]*report.Run, error)

	Close(ctx context.Context) error
}

// DefaultLimit caps List when limit is not positive.
const DefaultLimit = 50

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]*report.Run
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]*report.Run)}
}

func (m *Memory) Save(_ context.Context, run *report.Run) error {
	if run == nil || run.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "run without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*report.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "run %q not found", id)
	}
	return run, nil
}

func (m *Memory) List(_ context.Context, solid string, limit int) ([]*report.Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	m.mu.RLock()
	var out []*report.Run
	for _, run := range m.runs {
		if solid == "" || run.Solid == solid {
			out = append(out, run)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Started.After(out[j].Started) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Close(context.Context) error { return nil }

var _ Store = (*Memory)(nil)
