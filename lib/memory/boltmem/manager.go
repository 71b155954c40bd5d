package boltmem

import (
	"fmt"

	"github.com/tallykv/tallykv/lib/memory"
	bolt "go.etcd.io/bbolt"
)

// managerImpl implements memory.IManager on top of a single bbolt file.
// Every region is one bucket; bucket names are derived from the RegionID so
// that region layouts stay stable across versions.
type managerImpl struct {
	db      *bolt.DB
	path    string
	regions map[memory.RegionID][]byte
}

// Open creates or opens the durable memory file at the given path and
// initializes the requested regions. Initialization is idempotent: buckets
// that already exist are left untouched.
//
// Thread-safety: Open is not thread-safe and should only be called once
// during startup.
func Open(path string, regions ...memory.RegionID) (memory.IManager, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open durable memory at %s: %w", path, err)
	}

	m := &managerImpl{
		db:      db,
		path:    path,
		regions: make(map[memory.RegionID][]byte, len(regions)),
	}

	// Create all region buckets in one transaction so a crash during startup
	// leaves either all regions or none.
	err = db.Update(func(tx *bolt.Tx) error {
		for _, id := range regions {
			name := regionBucket(id)
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create region %d: %w", id, err)
			}
			m.regions[id] = name
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return m, nil
}

// regionBucket returns the bucket name for a region.
func regionBucket(id memory.RegionID) []byte {
	return []byte(fmt.Sprintf("region-%d", id))
}

// --------------------------------------------------------------------------
// Interface Methods (docu see memory/interface.go)
// --------------------------------------------------------------------------

func (m *managerImpl) Region(id memory.RegionID) (memory.IRegion, error) {
	name, ok := m.regions[id]
	if !ok {
		return nil, fmt.Errorf("region %d was not declared when the manager was opened", id)
	}
	return &regionImpl{db: m.db, bucket: name}, nil
}

func (m *managerImpl) Path() string {
	return m.path
}

func (m *managerImpl) Close() error {
	return m.db.Close()
}

// --------------------------------------------------------------------------
// Region Implementation
// --------------------------------------------------------------------------

// regionImpl implements memory.IRegion as one bucket of the shared file.
type regionImpl struct {
	db     *bolt.DB
	bucket []byte
}

func (r *regionImpl) Get(key []byte) ([]byte, bool, error) {
	var (
		value  []byte
		loaded bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("region bucket %s is missing", r.bucket)
		}
		v := b.Get(key)
		if v != nil {
			// Copy out of the transaction, bbolt memory is only valid inside it.
			value = make([]byte, len(v))
			copy(value, v)
			loaded = true
		}
		return nil
	})
	return value, loaded, err
}

func (r *regionImpl) Put(key, value []byte) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("region bucket %s is missing", r.bucket)
		}
		return b.Put(key, value)
	})
}

func (r *regionImpl) Delete(key []byte) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("region bucket %s is missing", r.bucket)
		}
		return b.Delete(key)
	})
}

func (r *regionImpl) Ascend(fn func(key, value []byte) error) error {
	return r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b == nil {
			return fmt.Errorf("region bucket %s is missing", r.bucket)
		}
		return b.ForEach(fn)
	})
}
