package poll

import (
	"sync"
	"time"

	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
)

// Clock supplies the current time in Unix nanoseconds. Injected so tests can
// control timestamps.
type Clock func() uint64

// SystemClock is the default clock.
func SystemClock() uint64 {
	return uint64(time.Now().UnixNano())
}

// Engine implements the poll domain rules on top of a record store and an
// identifier allocator. Every operation is a read-current, validate,
// produce-next, persist sequence.
//
// The engine is constructed explicitly and passed by handle to every caller;
// there is no package-global state, so tests can run any number of
// independent engines side by side.
type Engine struct {
	store store.IRecordStore
	alloc store.IAllocator
	now   Clock

	// One logical writer at a time. The transports may carry concurrent
	// requests; every mutation runs to completion before the next starts.
	mu sync.Mutex
}

// NewEngine creates a poll engine. A nil clock selects SystemClock.
func NewEngine(recordStore store.IRecordStore, alloc store.IAllocator, now Clock) *Engine {
	if now == nil {
		now = SystemClock
	}
	return &Engine{
		store: recordStore,
		alloc: alloc,
		now:   now,
	}
}

// --------------------------------------------------------------------------
// Validation
// --------------------------------------------------------------------------

// validatePayload checks the caller-supplied question and options shared by
// Create and Edit.
func validatePayload(question string, options []string) error {
	if question == "" {
		return store.NewError(store.RetCInvalidChoice, "question must not be empty")
	}
	if len(options) < 2 {
		return store.NewError(store.RetCInvalidChoice,
			"a poll needs at least 2 options, got %d", len(options))
	}
	seen := make(map[string]bool, len(options))
	for _, label := range options {
		if label == "" {
			return store.NewError(store.RetCInvalidChoice, "option labels must not be empty")
		}
		if seen[label] {
			return store.NewError(store.RetCInvalidChoice, "duplicate option label %q", label)
		}
		seen[label] = true
	}
	return nil
}

// --------------------------------------------------------------------------
// Operations
// --------------------------------------------------------------------------

// Create allocates a fresh identifier and persists a new poll with an
// all-zero tally over options. The owner may be empty when ownership is not
// used. Returns the new record.
func (e *Engine) Create(question string, options []string, owner string) (*record.Record, error) {
	if err := validatePayload(question, options); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id, err := e.alloc.NextID()
	if err != nil {
		return nil, err
	}

	rec := record.Record{
		ID:        id,
		Question:  question,
		Options:   append([]string(nil), options...),
		Tally:     record.ZeroTally(options),
		Owner:     owner,
		CreatedAt: e.now(),
	}

	if _, err := e.store.Insert(rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns the poll at id, or NotFound.
func (e *Engine) Get(id uint64) (*record.Record, error) {
	rec, loaded, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, store.NewError(store.RetCNotFound, "poll with id=%d not found", id)
	}
	return rec, nil
}

// List returns every live poll in ascending id order. An empty store is the
// distinct "no polls" outcome rather than an empty success, so callers can
// tell "nothing to show" from a transient empty page.
func (e *Engine) List() ([]record.Record, error) {
	recs, err := e.store.ScanAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, store.NewError(store.RetCNotFound, "there are currently no polls")
	}
	return recs, nil
}

// Edit replaces the question and options of the poll at id and resets the
// tally to zero over the new options. Prior counts are discarded; edits do
// not preserve historical votes.
func (e *Engine) Edit(id uint64, question string, options []string) (*record.Record, error) {
	if err := validatePayload(question, options); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, loaded, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, store.NewError(store.RetCNotFound, "couldn't update poll with id=%d: not found", id)
	}

	rec.Question = question
	rec.Options = append([]string(nil), options...)
	rec.Tally = record.ZeroTally(options)
	ts := e.now()
	rec.UpdatedAt = &ts

	if _, err := e.store.Insert(*rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the poll at id permanently and returns the removed record.
// There is no soft-delete and the identifier is never resurrected.
func (e *Engine) Delete(id uint64) (*record.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, err := e.store.Remove(id)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, store.NewError(store.RetCNotFound, "couldn't delete poll with id=%d: not found", id)
	}
	return prev, nil
}

// Vote increments the tally for choice by exactly 1. Unknown labels are
// rejected, never silently inserted; the record is left unchanged on any
// failure. This is the only mutation that does not replace question/options.
func (e *Engine) Vote(id uint64, choice string) (*record.Record, error) {
	if choice == "" {
		return nil, store.NewError(store.RetCInvalidChoice, "the selected option must not be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, loaded, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, store.NewError(store.RetCNotFound, "couldn't vote on poll with id=%d: not found", id)
	}

	if !rec.HasOption(choice) {
		return nil, store.NewError(store.RetCInvalidChoice,
			"%q is not an option of poll id=%d", choice, id)
	}

	rec.Tally[choice]++
	ts := e.now()
	rec.UpdatedAt = &ts

	if _, err := e.store.Insert(*rec); err != nil {
		return nil, err
	}
	return rec, nil
}
