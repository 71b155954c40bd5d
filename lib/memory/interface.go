package memory

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// RegionID identifies one partition of the durable memory.
// Region contents are disjoint: writes through one region handle are
// never visible through another.
type RegionID uint8

const (
	// RegionAllocator holds the single 8-byte identifier counter cell.
	RegionAllocator RegionID = 0
	// RegionRecords holds the ordered id -> serialized record map.
	RegionRecords RegionID = 1
)

// ManagerFactory is a function type that creates a new manager used by the
// record store and the allocator. This is used to abstract the creation of
// the durable memory from the components built on top of it.
type ManagerFactory func() (IManager, error)

// IManager partitions a single durable memory file into independent named
// regions. A manager must be opened exactly once per process lifetime;
// opening the same file again in the same run is the caller's error.
// Region initialization is idempotent: requesting the same RegionID on every
// start returns a handle to the same persisted contents.
type IManager interface {
	// Region returns the handle for the given partition.
	// The region must have been declared when the manager was opened.
	Region(id RegionID) (IRegion, error)
	// Path returns the location of the backing file.
	Path() string
	// Close releases the backing file. After Close all region handles are invalid.
	Close() error
}

// IRegion is an isolated, addressable, durable key-value region.
// All returned values are independent copies, safe to retain and modify.
type IRegion interface {
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key []byte) (value []byte, loaded bool, err error)
	// Put inserts or updates a key-value pair.
	Put(key, value []byte) (err error)
	// Delete removes a key-value pair. Deleting an absent key is not an error.
	Delete(key []byte) (err error)
	// Ascend calls fn for every key-value pair in ascending byte order of the
	// keys. Returning an error from fn stops the iteration and propagates the
	// error. The key and value slices are only valid for the duration of the
	// call; fn must copy what it keeps.
	Ascend(fn func(key, value []byte) error) (err error)
}
