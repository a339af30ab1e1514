package databases

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/linesmerrill/municipal-services-api/databases/collection"
	"github.com/linesmerrill/municipal-services-api/models"
)

// ErrNoDocuments is returned by FindOne when nothing matches
var ErrNoDocuments = errors.New("no documents in result")

// Store holds the process-wide collections and id counters. It is built once
// at startup and handed to every database that needs it; all collection
// access goes through mu.
type Store struct {
	mu          sync.RWMutex
	issues      *collection.OrderedCollection[*models.IssueReport]
	categories  *collection.OrderedCollection[*models.IssueCategory]
	issueSeq    *Sequence
	categorySeq *Sequence
}

// NewStore creates an empty store with both counters starting at 1
func NewStore() *Store {
	return &Store{
		issues:      collection.New[*models.IssueReport](),
		categories:  collection.New[*models.IssueCategory](),
		issueSeq:    NewSequence(),
		categorySeq: NewSequence(),
	}
}

// Sequence hands out increasing ids starting at 1. It is safe for concurrent
// use and never resets for the life of the process.
type Sequence struct {
	last *atomic.Int64
}

// NewSequence creates a sequence whose first id is 1
func NewSequence() *Sequence {
	return &Sequence{last: atomic.NewInt64(0)}
}

// Next returns the next id
func (s *Sequence) Next() int {
	return int(s.last.Inc())
}

// Last returns the most recently issued id, or 0 if none was issued
func (s *Sequence) Last() int {
	return int(s.last.Load())
}

func (s *Store) read(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
	return nil
}

func (s *Store) write(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	return nil
}
