package rstore

import (
	"encoding/binary"

	"github.com/tallykv/tallykv/lib/memory"
	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
)

// DefaultMaxRecordSize is the default bound on the encoded size of one
// record. It matches the layout the store was originally sized for; deploys
// with long questions or many options should raise it via Options.
const DefaultMaxRecordSize = 1024

// Options configures the record store behavior during initialization.
type Options struct {
	// MaxRecordSize bounds the encoded size of a record in bytes.
	// Zero means DefaultMaxRecordSize.
	MaxRecordSize int
}

// storeImpl implements store.IRecordStore on a durable memory region.
// Keys are 8-byte big-endian identifiers, so region iteration order is
// ascending id order.
type storeImpl struct {
	region  memory.IRegion
	codec   record.ICodec
	maxSize int
}

// New creates a record store over the given region using the given codec.
//
// Thread-safety: the store itself is stateless; concurrent use is as safe as
// the underlying region. The engine on top serializes mutations.
func New(region memory.IRegion, codec record.ICodec, opts *Options) store.IRecordStore {
	maxSize := DefaultMaxRecordSize
	if opts != nil && opts.MaxRecordSize > 0 {
		maxSize = opts.MaxRecordSize
	}
	return &storeImpl{
		region:  region,
		codec:   codec,
		maxSize: maxSize,
	}
}

// idKey converts an identifier to its durable key representation.
func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Insert(rec record.Record) (*record.Record, error) {
	encoded, err := s.codec.Encode(rec)
	if err != nil {
		return nil, store.NewError(store.RetCStorageFault, "failed to encode record id=%d: %v", rec.ID, err)
	}
	if len(encoded) > s.maxSize {
		return nil, store.NewError(store.RetCStorageFault,
			"encoded record id=%d is %d bytes, exceeds the %d byte bound", rec.ID, len(encoded), s.maxSize)
	}

	prev, _, err := s.Get(rec.ID)
	if err != nil {
		return nil, err
	}

	if err := s.region.Put(idKey(rec.ID), encoded); err != nil {
		return nil, store.NewError(store.RetCStorageFault, "failed to write record id=%d: %v", rec.ID, err)
	}
	return prev, nil
}

func (s *storeImpl) Get(id uint64) (*record.Record, bool, error) {
	value, loaded, err := s.region.Get(idKey(id))
	if err != nil {
		return nil, false, store.NewError(store.RetCStorageFault, "failed to read record id=%d: %v", id, err)
	}
	if !loaded {
		return nil, false, nil
	}

	var rec record.Record
	if err := s.codec.Decode(value, &rec); err != nil {
		return nil, false, store.NewError(store.RetCStorageFault, "failed to decode record id=%d: %v", id, err)
	}
	return &rec, true, nil
}

func (s *storeImpl) ScanAll() ([]record.Record, error) {
	var recs []record.Record
	err := s.region.Ascend(func(_, value []byte) error {
		var rec record.Record
		if err := s.codec.Decode(value, &rec); err != nil {
			return err
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, store.NewError(store.RetCStorageFault, "failed to scan records: %v", err)
	}
	return recs, nil
}

func (s *storeImpl) Remove(id uint64) (*record.Record, error) {
	prev, loaded, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !loaded {
		return nil, nil
	}

	if err := s.region.Delete(idKey(id)); err != nil {
		return nil, store.NewError(store.RetCStorageFault, "failed to remove record id=%d: %v", id, err)
	}
	return prev, nil
}

func (s *storeImpl) Has(id uint64) (bool, error) {
	_, loaded, err := s.region.Get(idKey(id))
	if err != nil {
		return false, store.NewError(store.RetCStorageFault, "failed to probe record id=%d: %v", id, err)
	}
	return loaded, nil
}
