package server

// IRPCServerAdapter is implemented by the RPC server and exposes its
// life cycle to the cmd layer.
type IRPCServerAdapter interface {
	// Serve starts listening on the configured transport. It blocks until
	// the transport fails and returns the terminal error.
	Serve() error

	// Close releases the durable storage held by the server.
	Close() error
}
