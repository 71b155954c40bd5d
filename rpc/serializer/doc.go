// Package serializer provides message serialization for the tallykv RPC
// system. It defines a common interface and multiple implementations for
// serializing and deserializing messages between client and server.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Supporting efficient encoding of the system's message structure
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations
//     must satisfy.
//
//   - jsonSerializerImpl: Implementation using JSON encoding, human-readable
//     and useful for debugging or interoperability with other systems.
//
//   - gobSerializerImpl: Implementation using Go's built-in gob encoding,
//     a compact binary format that handles the nested record structures of
//     the Message type without a hand-maintained wire layout.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once and reused throughout the application:
//
//	  s := serializer.NewJSONSerializer()
//	  data, err := s.Serialize(message)
//	  // ... send data ...
//	  var receivedMsg common.Message
//	  err = s.Deserialize(receivedData, &receivedMsg)
package serializer
