package unix

import (
	"fmt"
	"net"
	"os"

	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/transport"
	"github.com/tallykv/tallykv/rpc/transport/base"
)

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverConnector implements base.IServerConnector for unix domain sockets
type serverConnector struct{}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewUnixServerTransport creates a server transport listening on a unix domain socket
func NewUnixServerTransport(bufferSize int, maxWorkersPerConn int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{}, bufferSize, maxWorkersPerConn)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector)
// --------------------------------------------------------------------------

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	// Remove a stale socket file from a previous run
	if err := os.Remove(config.Endpoint); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket file: %v", err)
	}
	return net.Listen("unix", config.Endpoint)
}

func (c *serverConnector) UpgradeConnection(conn net.Conn, config common.ServerConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return fmt.Errorf("expected *net.UnixConn, got %T", conn)
	}
	return configureUnixConn(unixConn, config.Socket)
}

func (c *serverConnector) GetName() string {
	return "unix"
}

// --------------------------------------------------------------------------
// Helper Methods (shared with the client connector)
// --------------------------------------------------------------------------

// configureUnixConn applies socket buffer options to a connection
func configureUnixConn(conn *net.UnixConn, socket common.SocketConf) error {
	if socket.WriteBufferSize > 0 {
		if err := conn.SetWriteBuffer(socket.WriteBufferSize); err != nil {
			return fmt.Errorf("failed to set write buffer: %v", err)
		}
	}
	if socket.ReadBufferSize > 0 {
		if err := conn.SetReadBuffer(socket.ReadBufferSize); err != nil {
			return fmt.Errorf("failed to set read buffer: %v", err)
		}
	}
	return nil
}
