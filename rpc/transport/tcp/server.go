package tcp

import (
	"fmt"
	"net"
	"time"

	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/transport"
	"github.com/tallykv/tallykv/rpc/transport/base"
)

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverConnector implements base.IServerConnector for TCP sockets
type serverConnector struct{}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewTCPServerTransport creates a server transport listening on a TCP socket
func NewTCPServerTransport(bufferSize int, maxWorkersPerConn int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{}, bufferSize, maxWorkersPerConn)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IServerConnector)
// --------------------------------------------------------------------------

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	return net.Listen("tcp", config.Endpoint)
}

func (c *serverConnector) UpgradeConnection(conn net.Conn, config common.ServerConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return fmt.Errorf("expected *net.TCPConn, got %T", conn)
	}
	return configureTCPConn(tcpConn, config.Socket, config.TCP)
}

func (c *serverConnector) GetName() string {
	return "tcp"
}

// --------------------------------------------------------------------------
// Helper Methods (shared with the client connector)
// --------------------------------------------------------------------------

// configureTCPConn applies socket and TCP options to a connection
func configureTCPConn(conn *net.TCPConn, socket common.SocketConf, tcp common.TCPConf) error {
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

	if err := conn.SetNoDelay(tcp.TCPNoDelay); err != nil {
		return fmt.Errorf("failed to set no-delay: %v", err)
	}

	if tcp.TCPKeepAliveSec > 0 {
		if err := conn.SetKeepAlive(true); err != nil {
			return fmt.Errorf("failed to enable keep-alive: %v", err)
		}
		if err := conn.SetKeepAlivePeriod(time.Duration(tcp.TCPKeepAliveSec) * time.Second); err != nil {
			return fmt.Errorf("failed to set keep-alive period: %v", err)
		}
	}

	if tcp.TCPLingerSec >= 0 {
		if err := conn.SetLinger(tcp.TCPLingerSec); err != nil {
			return fmt.Errorf("failed to set linger: %v", err)
		}
	}

	return nil
}
