// Package transport defines the byte-level transports that carry
// serialized RPC messages between client and server.
//
// The base package implements a framed request/response protocol over
// stream connections with request multiplexing: every frame carries a
// request id, so multiple requests can be in flight on one connection.
// The tcp and unix packages plug protocol-specific connectors into the
// base implementation. The http package is a standalone transport that
// posts messages to /rpc and additionally exposes /metrics and /healthz.
package transport
