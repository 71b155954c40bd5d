package base

import (
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific client operations
type IClientConnector interface {
	// Connect establishes a connection to the given endpoint
	Connect(endpoint string, config common.ClientConfig) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// responseResult pairs a raw response with a read error
type responseResult struct {
	data []byte
	err  error
}

// clientConnection wraps a single connection with its write mutex
type clientConnection struct {
	conn       net.Conn
	writeMutex sync.Mutex
	closed     atomic.Bool
}

// clientTransport implements the core client transport functionality
type clientTransport struct {
	connector     IClientConnector
	config        common.ClientConfig
	connections   []*clientConnection
	nextConn      atomic.Uint64
	nextRequestID atomic.Uint64
	requestChans  *xsync.MapOf[uint64, chan responseResult]
	closeOnce     sync.Once
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector:    connector,
		requestChans: xsync.NewMapOf[uint64, chan responseResult](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.config = config

	if len(config.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	connsPerEndpoint := config.ConnectionsPerEndpoint
	if connsPerEndpoint < 1 {
		connsPerEndpoint = 1
	}

	// Open connectionsPerEndpoint connections to every endpoint
	for _, endpoint := range config.Endpoints {
		for i := 0; i < connsPerEndpoint; i++ {
			conn, err := t.connector.Connect(endpoint, config)
			if err != nil {
				t.closeAll()
				return fmt.Errorf("failed to connect to %s: %v", endpoint, err)
			}

			cc := &clientConnection{conn: conn}
			t.connections = append(t.connections, cc)

			// Start the response reader for this connection
			go t.readResponses(cc)
		}
	}

	Logger.Info("client connected",
		"transport", t.connector.GetName(),
		"endpoints", config.Endpoints,
		"connections", len(t.connections))

	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	var lastErr error

	retries := t.config.RetryCount
	if retries < 0 {
		retries = 0
	}

	for attempt := 0; attempt <= retries; attempt++ {
		// Exponential backoff with jitter between retries
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			backoff += time.Duration(rand.Int63n(int64(50 * time.Millisecond)))
			time.Sleep(backoff)
		}

		resp, err := t.sendOnce(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		Logger.Warn("request failed", "attempt", attempt, "err", err)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %v", retries+1, lastErr)
}

func (t *clientTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeAll()
	})
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sendOnce performs a single request/response round-trip
func (t *clientTransport) sendOnce(req []byte) ([]byte, error) {
	cc, err := t.getNextConnection()
	if err != nil {
		return nil, err
	}

	// Allocate a request id and register the response channel
	requestID := t.nextRequestID.Add(1)
	respChan := make(chan responseResult, 1)
	t.requestChans.Store(requestID, respChan)
	defer t.requestChans.Delete(requestID)

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	// Write the framed request
	cc.writeMutex.Lock()
	if timeout > 0 {
		if err := cc.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			cc.writeMutex.Unlock()
			return nil, fmt.Errorf("failed to set write deadline: %v", err)
		}
	}
	err = writeFrame(cc.conn, requestID, req)
	cc.writeMutex.Unlock()

	if err != nil {
		return nil, fmt.Errorf("failed to write request: %v", err)
	}

	// Wait for the response from the reader goroutine
	if timeout > 0 {
		select {
		case result := <-respChan:
			return result.data, result.err
		case <-time.After(timeout):
			return nil, fmt.Errorf("request timed out after %v", timeout)
		}
	}

	result := <-respChan
	return result.data, result.err
}

// getNextConnection returns the next healthy connection (round-robin)
func (t *clientTransport) getNextConnection() (*clientConnection, error) {
	n := len(t.connections)
	if n == 0 {
		return nil, fmt.Errorf("not connected")
	}

	// Try every connection once, starting at the round-robin cursor
	start := t.nextConn.Add(1)
	for i := 0; i < n; i++ {
		cc := t.connections[(int(start)+i)%n]
		if !cc.closed.Load() {
			return cc, nil
		}
	}

	return nil, fmt.Errorf("all connections closed")
}

// readResponses reads frames from one connection and dispatches them
// to the waiting request channels until the connection dies
func (t *clientTransport) readResponses(cc *clientConnection) {
	buf := make([]byte, 4096)

	for {
		requestID, data, err := readFrame(cc.conn, buf)
		if err != nil {
			cc.closed.Store(true)
			_ = cc.conn.Close()

			// Fail all requests still waiting on this connection.
			// Requests on other connections are unaffected.
			t.requestChans.Range(func(id uint64, ch chan responseResult) bool {
				select {
				case ch <- responseResult{err: fmt.Errorf("connection closed: %v", err)}:
				default:
				}
				return true
			})
			return
		}

		// The frame payload is reused for the next read, copy it out
		resp := make([]byte, len(data))
		copy(resp, data)

		if ch, ok := t.requestChans.Load(requestID); ok {
			ch <- responseResult{data: resp}
		} else {
			Logger.Warn("received response for unknown request", "requestID", requestID)
		}
	}
}

// closeAll closes every open connection
func (t *clientTransport) closeAll() {
	for _, cc := range t.connections {
		cc.closed.Store(true)
		_ = cc.conn.Close()
	}
}
