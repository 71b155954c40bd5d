// Package store provides the storage interfaces of tallykv together with
// unified error handling. It is the abstraction layer between the domain
// logic in lib/poll and the durable memory in lib/memory.
//
// The package focuses on:
//   - A unified interface (IRecordStore) for the durable ordered map from
//     identifier to poll record
//   - The identifier allocator contract (IAllocator)
//   - A structured error system using typed return codes (RetCode) and
//     descriptive messages, so callers can make decisions based on specific
//     error conditions rather than generic errors
//
// Implementations:
//
//	The durable implementation of both interfaces lives in the
//	"github.com/tallykv/tallykv/lib/store/rstore" package. It persists
//	records through a pluggable record.ICodec into one memory region and the
//	allocator counter into another, so a process restart resumes with the
//	exact same live set and counter state.
package store
