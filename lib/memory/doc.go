// Package memory defines the durable memory layer of tallykv: a single
// persistent file divided into independent named partitions (regions) so that
// multiple logical stores can coexist without layout collisions.
//
// The package focuses on:
//   - A unified interface (IManager, IRegion) for durable partitioned storage
//   - Pluggable backend architecture through the ManagerFactory pattern
//
// Two regions are used by this system: RegionAllocator (0) holds the
// identifier counter cell and RegionRecords (1) holds the ordered record map.
// Further regions can be declared without affecting existing layouts.
//
// Implementations:
//
//	The bbolt-backed implementation lives in the
//	"github.com/tallykv/tallykv/lib/memory/boltmem" package. It maps every
//	region to its own bucket inside one B+ tree file, which gives each region
//	ordered iteration and crash-safe persistence across process restarts.
package memory
