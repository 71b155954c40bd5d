package server

import (
	"path/filepath"
	"testing"

	"github.com/tallykv/tallykv/lib/memory"
	"github.com/tallykv/tallykv/lib/memory/boltmem"
	"github.com/tallykv/tallykv/lib/poll"
	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
	"github.com/tallykv/tallykv/lib/store/rstore"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/serializer"
)

// newTestServer builds a server over a fresh durable memory file, skipping
// the transport. Requests are fed straight into handleRequest.
func newTestServer(t *testing.T, enforceOwner bool) *rpcServer {
	t.Helper()

	manager, err := boltmem.Open(
		filepath.Join(t.TempDir(), "test.db"),
		memory.RegionAllocator,
		memory.RegionRecords,
	)
	if err != nil {
		t.Fatalf("failed to open durable memory: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close() })

	allocRegion, err := manager.Region(memory.RegionAllocator)
	if err != nil {
		t.Fatalf("failed to get allocator region: %v", err)
	}
	recordRegion, err := manager.Region(memory.RegionRecords)
	if err != nil {
		t.Fatalf("failed to get record region: %v", err)
	}

	recordStore := rstore.New(recordRegion, record.NewJSONCodec(), nil)

	var authorizer Authorizer = AllowAll{}
	if enforceOwner {
		authorizer = OwnerOnly{}
	}

	return &rpcServer{
		serializer: serializer.NewJSONSerializer(),
		manager:    manager,
		engine:     poll.NewEngine(recordStore, rstore.NewAllocator(allocRegion, recordStore), nil),
		authorizer: authorizer,
	}
}

// roundTrip serializes a request, feeds it through the server and
// deserializes the response.
func roundTrip(t *testing.T, s *rpcServer, req *common.Message) *common.Message {
	t.Helper()

	data, err := s.serializer.Serialize(*req)
	if err != nil {
		t.Fatalf("failed to serialize request: %v", err)
	}

	var resp common.Message
	if err := s.serializer.Deserialize(s.handleRequest(data), &resp); err != nil {
		t.Fatalf("failed to deserialize response: %v", err)
	}
	return &resp
}

func TestDispatchCreateAndGet(t *testing.T) {
	s := newTestServer(t, false)

	resp := roundTrip(t, s, common.NewCreateRequest("favorite color?", []string{"red", "blue"}, ""))
	if resp.Err != "" {
		t.Fatalf("create failed: %s", resp.Err)
	}
	if resp.Record == nil || resp.Record.ID != 1 {
		t.Fatalf("expected record with id=1, got %+v", resp.Record)
	}

	resp = roundTrip(t, s, common.NewGetRequest(1))
	if resp.Err != "" {
		t.Fatalf("get failed: %s", resp.Err)
	}
	if resp.Record.Question != "favorite color?" {
		t.Errorf("expected question to round-trip, got %q", resp.Record.Question)
	}
}

func TestDispatchErrorCodeRoundTrip(t *testing.T) {
	s := newTestServer(t, false)

	resp := roundTrip(t, s, common.NewGetRequest(42))
	if resp.Err == "" {
		t.Fatal("expected error for missing poll")
	}
	if code := store.CodeOf(resp.ErrorOf()); code != store.RetCNotFound {
		t.Errorf("expected RetCNotFound, got %v", code)
	}
}

func TestDispatchVote(t *testing.T) {
	s := newTestServer(t, false)

	roundTrip(t, s, common.NewCreateRequest("q?", []string{"a", "b"}, ""))

	resp := roundTrip(t, s, common.NewVoteRequest(1, "a"))
	if resp.Err != "" {
		t.Fatalf("vote failed: %s", resp.Err)
	}
	if resp.Record.Tally["a"] != 1 || resp.Record.Tally["b"] != 0 {
		t.Errorf("unexpected tally: %v", resp.Record.Tally)
	}

	resp = roundTrip(t, s, common.NewVoteRequest(1, "nope"))
	if code := store.CodeOf(resp.ErrorOf()); code != store.RetCInvalidChoice {
		t.Errorf("expected RetCInvalidChoice, got %v", code)
	}
}

func TestDispatchListEmpty(t *testing.T) {
	s := newTestServer(t, false)

	resp := roundTrip(t, s, common.NewListRequest())
	if code := store.CodeOf(resp.ErrorOf()); code != store.RetCNotFound {
		t.Errorf("expected RetCNotFound for empty store, got %v", code)
	}
}

func TestOwnershipEnforcement(t *testing.T) {
	s := newTestServer(t, true)

	resp := roundTrip(t, s, common.NewCreateRequest("q?", []string{"a", "b"}, "alice"))
	if resp.Err != "" {
		t.Fatalf("create failed: %s", resp.Err)
	}

	// A different requester may not edit or delete
	resp = roundTrip(t, s, common.NewEditRequest(1, "q2?", []string{"x", "y"}, "bob"))
	if code := store.CodeOf(resp.ErrorOf()); code != store.RetCNotAuthorized {
		t.Errorf("expected RetCNotAuthorized on edit, got %v", code)
	}
	resp = roundTrip(t, s, common.NewDeleteRequest(1, "bob"))
	if code := store.CodeOf(resp.ErrorOf()); code != store.RetCNotAuthorized {
		t.Errorf("expected RetCNotAuthorized on delete, got %v", code)
	}

	// The owner may
	resp = roundTrip(t, s, common.NewEditRequest(1, "q2?", []string{"x", "y"}, "alice"))
	if resp.Err != "" {
		t.Errorf("owner edit failed: %s", resp.Err)
	}
	resp = roundTrip(t, s, common.NewDeleteRequest(1, "alice"))
	if resp.Err != "" {
		t.Errorf("owner delete failed: %s", resp.Err)
	}
}

func TestOwnershipNotEnforcedByDefault(t *testing.T) {
	s := newTestServer(t, false)

	roundTrip(t, s, common.NewCreateRequest("q?", []string{"a", "b"}, "alice"))

	resp := roundTrip(t, s, common.NewDeleteRequest(1, "bob"))
	if resp.Err != "" {
		t.Errorf("expected delete to succeed without enforcement, got %s", resp.Err)
	}
}

func TestUnsupportedMessageType(t *testing.T) {
	s := newTestServer(t, false)

	resp := roundTrip(t, s, &common.Message{MsgType: common.MsgTSuccess})
	if resp.MsgType != common.MsgTError || resp.Err == "" {
		t.Errorf("expected error response, got %+v", resp)
	}
}

func TestMalformedRequest(t *testing.T) {
	s := newTestServer(t, false)

	var resp common.Message
	if err := s.serializer.Deserialize(s.handleRequest([]byte("not a message")), &resp); err != nil {
		t.Fatalf("failed to deserialize response: %v", err)
	}
	if resp.MsgType != common.MsgTError || resp.Err == "" {
		t.Errorf("expected error response, got %+v", resp)
	}
}
