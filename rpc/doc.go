// Package rpc contains the client/server plumbing for accessing a tallykv
// instance over a network or socket.
//
// The layering is strict: common defines the wire messages and the
// configuration structs, serializer turns messages into bytes, transport
// moves bytes, and server/client sit on top of all three. Swapping a
// serializer or a transport never touches the layers above or below.
package rpc
