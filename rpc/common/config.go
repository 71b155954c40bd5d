package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared transport tuning structs
// --------------------------------------------------------------------------

// SocketConf holds buffer tuning shared by the socket transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific tuning, ignored by unix and http transports.
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the tallykv server.
type ServerConfig struct {
	// The address on which the server listens (host:port or a socket path)
	Endpoint string

	// Storage parameters
	DataDir       string // Directory holding the durable memory file
	MaxRecordSize int    // Bound on the encoded size of one record (0 = default)

	// Ownership enforcement: when true, edit and delete require the
	// requester to match the record's owner
	EnforceOwner bool

	// Timeout for transport reads and writes, in seconds
	TimeoutSecond int64

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Socket tuning
	Socket SocketConf
	TCP    TCPConf
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	addSection("Storage")
	addField("Data Directory", c.DataDir)
	if c.MaxRecordSize > 0 {
		addField("Max Record Size", fmt.Sprintf("%d bytes", c.MaxRecordSize))
	} else {
		addField("Max Record Size", "default")
	}

	addSection("Authorization")
	addField("Enforce Owner", strconv.FormatBool(c.EnforceOwner))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	addField("Log Format", c.LogFormat)

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for RPC clients.
type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int

	// Socket tuning
	Socket SocketConf
	TCP    TCPConf
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	connPerEP := c.ConnectionsPerEndpoint
	if connPerEP < 1 {
		connPerEP = 1
	}
	addField("Connections Per Endpoint", strconv.Itoa(connPerEP))

	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
