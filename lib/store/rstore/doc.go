// Package rstore implements the durable record store and the identifier
// allocator on top of the partitioned memory layer.
//
// Records are written through a pluggable record.ICodec into the records
// region under 8-byte big-endian keys, which makes region iteration order
// equal to ascending id order. The encoded size of every record is bounded;
// exceeding the bound is reported as a typed StorageFault, never a panic.
//
// The allocator keeps the last issued identifier in a single durable cell in
// its own region and verifies every candidate against the live key set
// before committing it, so identifiers never collide with records inserted
// out of band and are never reused after deletion.
package rstore
