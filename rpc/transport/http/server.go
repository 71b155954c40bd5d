package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/tallykv/tallykv/lib/logging"
	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/transport"
)

var Logger = logging.For("transport")

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements transport.IRPCServerTransport over HTTP
type serverTransport struct {
	handler        transport.ServerHandleFunc
	maxRequestSize int64
}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewHTTPServerTransport creates a server transport exposing the RPC handler
// on POST /rpc, plus GET /metrics and GET /healthz
func NewHTTPServerTransport(maxRequestSize int64) transport.IRPCServerTransport {
	if maxRequestSize <= 0 {
		maxRequestSize = 1 << 20 // 1 MiB
	}
	return &serverTransport{
		maxRequestSize: maxRequestSize,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", t.handleRPC)
	mux.HandleFunc("/healthz", t.handleHealth)
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	timeout := time.Duration(config.TimeoutSecond) * time.Second

	server := &http.Server{
		Addr:         config.Endpoint,
		Handler:      mux,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	Logger.Info("starting server",
		"transport", "http",
		"endpoint", config.Endpoint)

	return server.ListenAndServe()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleRPC reads the request body, dispatches it to the RPC handler
// and writes the serialized response back
func (t *serverTransport) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, t.maxRequestSize))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read request body: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp := t.handler(body)
	Logger.Debug("processed request", "took", time.Since(start))

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := w.Write(resp); err != nil {
		Logger.Error("failed to write response", "err", err)
	}
}

// handleHealth reports liveness
func (t *serverTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
