package rstore

import (
	"encoding/binary"

	"github.com/tallykv/tallykv/lib/memory"
	"github.com/tallykv/tallykv/lib/store"
)

// counterKey is the single cell inside the allocator region that holds the
// last issued identifier as an 8-byte big-endian value.
var counterKey = []byte("id_counter")

// allocatorImpl implements store.IAllocator on a durable single-value cell.
// The counter seeds at 0, so the first issued identifier is 1.
type allocatorImpl struct {
	region memory.IRegion
	store  store.IRecordStore
}

// NewAllocator creates an identifier allocator over the given region,
// checking candidates against the live key set of the given record store.
func NewAllocator(region memory.IRegion, recordStore store.IRecordStore) store.IAllocator {
	return &allocatorImpl{
		region: region,
		store:  recordStore,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (a *allocatorImpl) NextID() (uint64, error) {
	current, err := a.load()
	if err != nil {
		return 0, err
	}

	// The persisted counter does not automatically advance past insertions
	// performed out of band, so every candidate is verified against the live
	// key set before it is committed. Incrementing blindly could re-issue an
	// identifier that an external write already occupies.
	candidate := current + 1
	for {
		occupied, err := a.store.Has(candidate)
		if err != nil {
			return 0, store.NewError(store.RetCAllocationFault,
				"failed to probe live key set at id=%d: %v", candidate, err)
		}
		if !occupied {
			break
		}
		candidate++
	}

	if err := a.persist(candidate); err != nil {
		return 0, err
	}
	return candidate, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// load reads the current counter value. An absent cell reads as 0.
func (a *allocatorImpl) load() (uint64, error) {
	value, loaded, err := a.region.Get(counterKey)
	if err != nil {
		return 0, store.NewError(store.RetCAllocationFault, "failed to read counter cell: %v", err)
	}
	if !loaded {
		return 0, nil
	}
	if len(value) != 8 {
		return 0, store.NewError(store.RetCAllocationFault,
			"counter cell is %d bytes, expected 8", len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// persist writes the chosen value as the new counter state. A failed write
// is a non-retryable storage fault: the candidate must not be handed out
// without being committed first.
func (a *allocatorImpl) persist(value uint64) error {
	cell := make([]byte, 8)
	binary.BigEndian.PutUint64(cell, value)
	if err := a.region.Put(counterKey, cell); err != nil {
		return store.NewError(store.RetCAllocationFault, "failed to persist counter value %d: %v", value, err)
	}
	return nil
}
