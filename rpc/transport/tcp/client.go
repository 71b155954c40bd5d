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

// clientConnector implements base.IClientConnector for TCP sockets
type clientConnector struct{}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewTCPClientTransport creates a client transport connecting over TCP sockets
func NewTCPClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) Connect(endpoint string, config common.ClientConfig) (net.Conn, error) {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	conn, err := net.DialTimeout("tcp", endpoint, timeout)
	if err != nil {
		return nil, err
	}

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("expected *net.TCPConn, got %T", conn)
	}

	if err := configureTCPConn(tcpConn, config.Socket, config.TCP); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (c *clientConnector) GetName() string {
	return "tcp"
}
