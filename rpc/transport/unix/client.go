package unix

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

// clientConnector implements base.IClientConnector for unix domain sockets
type clientConnector struct{}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewUnixClientTransport creates a client transport connecting over unix domain sockets
func NewUnixClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) Connect(endpoint string, config common.ClientConfig) (net.Conn, error) {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	conn, err := net.DialTimeout("unix", endpoint, timeout)
	if err != nil {
		return nil, err
	}

	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("expected *net.UnixConn, got %T", conn)
	}

	if err := configureUnixConn(unixConn, config.Socket); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (c *clientConnector) GetName() string {
	return "unix"
}
