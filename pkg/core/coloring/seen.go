package coloring

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/matzehuels/isomer/pkg/errors"
)

// SeenSet records the keys of colorings already assigned to an orbit.
type SeenSet interface {
	// TryAdd adds key if it is not already present and reports whether it
	// was added.
	TryAdd(key string) bool

	// Len returns the number of distinct keys added.
	Len() int

	// Close releases the set. It returns the first storage error met by
	// TryAdd, if any.
	Close() error
}

// SeenKind names a SeenSet implementation.
type SeenKind string

const (
	// SeenMap keeps keys in a Go map. It is the default.
	SeenMap SeenKind = "map"

	// SeenLSM keeps keys in an in-memory badger LSM tree, which holds up
	// better than a map once label sets grow past a few dozen vertices.
	SeenLSM SeenKind = "lsm"
)

// ParseSeenKind parses a seen-set name as used on the command line.
func ParseSeenKind(s string) (SeenKind, error) {
	switch k := SeenKind(strings.ToLower(s)); k {
	case SeenMap, SeenLSM:
		return k, nil
	case "":
		return SeenMap, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unknown seen-set %q (want %q or %q)", s, SeenMap, SeenLSM)
}

// Open creates an empty set of this kind.
func (k SeenKind) Open() (SeenSet, error) {
	if k == SeenLSM {
		return NewLSMSet()
	}
	return NewMapSet(), nil
}

type mapSet struct {
	keys map[string]struct{}
}

// NewMapSet returns a SeenSet backed by a Go map.
func NewMapSet() SeenSet {
	return &mapSet{keys: make(map[string]struct{})}
}

func (s *mapSet) TryAdd(key string) bool {
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *mapSet) Len() int { return len(s.keys) }

func (s *mapSet) Close() error {
	s.keys = nil
	return nil
}

type lsmSet struct {
	db  *badger.DB
	n   int
	err error
}

// NewLSMSet returns a SeenSet backed by an in-memory badger database.
// Call Close when done to release it.
func NewLSMSet() (SeenSet, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	opts.MetricsEnabled = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open seen-set: %w", err)
	}
	return &lsmSet{db: db}, nil
}

func (s *lsmSet) TryAdd(key string) bool {
	if s.err != nil {
		return false
	}

	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		added = true
		return txn.Set([]byte(key), nil)
	})
	if err != nil {
		s.err = fmt.Errorf("seen-set add %q: %w", key, err)
		return false
	}
	if added {
		s.n++
	}
	return added
}

func (s *lsmSet) Len() int { return s.n }

func (s *lsmSet) Close() error {
	if s.db == nil {
		return s.err
	}
	closeErr := s.db.Close()
	s.db = nil
	if s.err != nil {
		return s.err
	}
	return closeErr
}
