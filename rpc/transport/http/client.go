package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tallykv/tallykv/rpc/common"
	"github.com/tallykv/tallykv/rpc/transport"
)

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements transport.IRPCClientTransport over HTTP
type clientTransport struct {
	config  common.ClientConfig
	urls    []string
	client  *http.Client
	nextURL atomic.Uint64
}

// -----------------------------------------------------------
// Transport Factory Method
// -----------------------------------------------------------

// NewHTTPClientTransport creates a client transport sending requests
// via POST /rpc to the configured endpoints (round-robin)
func NewHTTPClientTransport() transport.IRPCClientTransport {
	return &clientTransport{}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.config = config

	if len(config.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	// Normalize endpoints into full /rpc URLs
	for _, endpoint := range config.Endpoints {
		url := endpoint
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			url = "http://" + url
		}
		t.urls = append(t.urls, strings.TrimSuffix(url, "/")+"/rpc")
	}

	t.client = &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
	}

	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	var lastErr error

	retries := t.config.RetryCount
	if retries < 0 {
		retries = 0
	}

	for attempt := 0; attempt <= retries; attempt++ {
		url := t.urls[int(t.nextURL.Add(1))%len(t.urls)]

		resp, err := t.sendOnce(url, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		Logger.Warn("request failed", "url", url, "attempt", attempt, "err", err)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %v", retries+1, lastErr)
}

func (t *clientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sendOnce performs a single POST round-trip to the given URL
func (t *clientTransport) sendOnce(url string, req []byte) ([]byte, error) {
	httpResp, err := t.client.Post(url, "application/octet-stream", bytes.NewReader(req))
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return nil, fmt.Errorf("server returned %s: %s", httpResp.Status, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(httpResp.Body)
}
