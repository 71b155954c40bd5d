package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tallykv/tallykv/lib/logging"
	"github.com/tallykv/tallykv/lib/memory"
	"github.com/tallykv/tallykv/lib/memory/boltmem"
	"github.com/tallykv/tallykv/lib/poll"
	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store/rstore"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/serializer"
	"github.com/tallykv/tallykv/rpc/transport"
)

var Logger = logging.For("server")

// dbFileName is the name of the durable memory file inside the data directory.
const dbFileName = "tallykv.db"

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// rpcServer wires the durable poll engine to a transport and a serializer.
type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	manager    memory.IManager
	engine     *poll.Engine
	authorizer Authorizer
}

// -----------------------------------------------------------
// Server Factory Method
// -----------------------------------------------------------

// NewRPCServer opens the durable memory under config.DataDir, builds the
// poll engine on top of it and returns a server ready to Serve.
func NewRPCServer(
	config common.ServerConfig,
	serverTransport transport.IRPCServerTransport,
	rpcSerializer serializer.IRPCSerializer,
) (IRPCServerAdapter, error) {
	logging.Init(config.LogLevel, config.LogFormat)

	if err := os.MkdirAll(config.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	manager, err := boltmem.Open(
		filepath.Join(config.DataDir, dbFileName),
		memory.RegionAllocator,
		memory.RegionRecords,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open durable memory: %v", err)
	}

	allocRegion, err := manager.Region(memory.RegionAllocator)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}
	recordRegion, err := manager.Region(memory.RegionRecords)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	recordStore := rstore.New(recordRegion, record.NewJSONCodec(), &rstore.Options{
		MaxRecordSize: config.MaxRecordSize,
	})
	alloc := rstore.NewAllocator(allocRegion, recordStore)

	var authorizer Authorizer = AllowAll{}
	if config.EnforceOwner {
		authorizer = OwnerOnly{}
	}

	s := &rpcServer{
		config:     config,
		transport:  serverTransport,
		serializer: rpcSerializer,
		manager:    manager,
		engine:     poll.NewEngine(recordStore, alloc, nil),
		authorizer: authorizer,
	}

	serverTransport.RegisterHandler(s.handleRequest)

	Logger.Info("server initialized", "dataDir", config.DataDir, "enforceOwner", config.EnforceOwner)

	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see interface.go)
// --------------------------------------------------------------------------

func (s *rpcServer) Serve() error {
	return s.transport.Listen(s.config)
}

func (s *rpcServer) Close() error {
	return s.manager.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleRequest deserializes one request, dispatches it to the engine and
// serializes the response. It never returns an unserializable response: a
// serialization failure degrades to a plain error message.
func (s *rpcServer) handleRequest(req []byte) []byte {
	var msg common.Message
	if err := s.serializer.Deserialize(req, &msg); err != nil {
		Logger.Warn("failed to deserialize request", "err", err)
		return s.mustSerialize(common.NewErrorResponse(
			fmt.Sprintf("failed to deserialize request: %v", err)))
	}

	resp := s.dispatch(&msg)
	countRequest(msg.MsgType, resp.Err != "")

	return s.mustSerialize(resp)
}

// mustSerialize serializes a response message, falling back to a minimal
// JSON error if the configured serializer fails.
func (s *rpcServer) mustSerialize(msg *common.Message) []byte {
	data, err := s.serializer.Serialize(*msg)
	if err != nil {
		Logger.Error("failed to serialize response", "err", err)
		return []byte(`{"msg_type":"error","err":"failed to serialize response"}`)
	}
	return data
}
