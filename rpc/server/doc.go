// Package server exposes the poll engine over an RPC transport.
//
// The server owns the full storage stack: it opens the durable memory file,
// carves out the allocator and record regions, and builds the engine on top.
// Incoming byte frames are deserialized into common.Message values,
// dispatched to the engine, and the typed result (record plus error code)
// travels back the same way. Ownership checks on edit and delete are
// pluggable via the Authorizer interface.
package server
