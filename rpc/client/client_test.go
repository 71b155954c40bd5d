package client

import (
	"testing"

	"github.com/tallykv/tallykv/lib/store"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/serializer"
	"github.com/tallykv/tallykv/rpc/server"
	"github.com/tallykv/tallykv/rpc/transport"
)

// loopbackTransport implements both transport interfaces and short-circuits
// requests into the registered server handler, so client and server can be
// tested end to end without a socket.
type loopbackTransport struct {
	handler transport.ServerHandleFunc
}

func (t *loopbackTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *loopbackTransport) Listen(config common.ServerConfig) error { return nil }

func (t *loopbackTransport) Connect(config common.ClientConfig) error { return nil }

func (t *loopbackTransport) Send(req []byte) ([]byte, error) {
	return t.handler(req), nil
}

func (t *loopbackTransport) Close() error { return nil }

// newTestClient wires a client to a fresh server over the loopback transport.
func newTestClient(t *testing.T, requester string) IPollClient {
	t.Helper()

	loopback := &loopbackTransport{}

	srv, err := server.NewRPCServer(common.ServerConfig{
		DataDir:   t.TempDir(),
		LogLevel:  "error",
		LogFormat: "text",
	}, loopback, serializer.NewJSONSerializer())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	c, err := NewPollClient(common.ClientConfig{}, loopback, serializer.NewJSONSerializer(), requester)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestClientLifecycle(t *testing.T) {
	c := newTestClient(t, "alice")

	rec, err := c.Create("tea or coffee?", []string{"tea", "coffee"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("expected id=1, got %d", rec.ID)
	}
	if rec.Owner != "alice" {
		t.Errorf("expected requester to become owner, got %q", rec.Owner)
	}

	rec, err = c.Vote(rec.ID, "tea")
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if rec.Tally["tea"] != 1 {
		t.Errorf("expected tally[tea]=1, got %d", rec.Tally["tea"])
	}

	recs, err := c.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 poll, got %d", len(recs))
	}

	rec, err = c.Edit(rec.ID, "tea, coffee or mate?", []string{"tea", "coffee", "mate"})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if rec.Tally["tea"] != 0 {
		t.Errorf("expected edit to reset the tally, got %v", rec.Tally)
	}

	if _, err := c.Delete(rec.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := c.Get(rec.ID); store.CodeOf(err) != store.RetCNotFound {
		t.Errorf("expected RetCNotFound after delete, got %v", err)
	}
}

func TestClientTypedErrors(t *testing.T) {
	c := newTestClient(t, "")

	if _, err := c.Get(99); store.CodeOf(err) != store.RetCNotFound {
		t.Errorf("expected RetCNotFound, got %v", err)
	}

	if _, err := c.Create("q?", []string{"only one"}); store.CodeOf(err) != store.RetCInvalidChoice {
		t.Errorf("expected RetCInvalidChoice, got %v", err)
	}

	if _, err := c.List(); store.CodeOf(err) != store.RetCNotFound {
		t.Errorf("expected RetCNotFound on empty store, got %v", err)
	}
}
