package base

import (
	"bytes"
	"net"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		requestID uint64
		data      []byte
	}{
		{"empty payload", 1, []byte{}},
		{"small payload", 42, []byte("hello")},
		{"large payload", 1 << 40, bytes.Repeat([]byte{0xab}, 64*1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer client.Close()
			defer server.Close()

			writeErr := make(chan error, 1)
			go func() {
				writeErr <- writeFrame(client, tt.requestID, tt.data)
			}()

			buf := make([]byte, 32)
			requestID, data, err := readFrame(server, buf)
			if err != nil {
				t.Fatalf("readFrame failed: %v", err)
			}
			if err := <-writeErr; err != nil {
				t.Fatalf("writeFrame failed: %v", err)
			}

			if requestID != tt.requestID {
				t.Errorf("expected requestID %d, got %d", tt.requestID, requestID)
			}
			if !bytes.Equal(data, tt.data) {
				t.Errorf("payload mismatch: expected %d bytes, got %d bytes", len(tt.data), len(data))
			}
		})
	}
}

func TestFrameMultiplexing(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	frames := map[uint64][]byte{
		1: []byte("first"),
		2: []byte("second"),
		3: []byte("third"),
	}

	go func() {
		for _, id := range []uint64{3, 1, 2} {
			if err := writeFrame(client, id, frames[id]); err != nil {
				return
			}
		}
	}()

	buf := make([]byte, 1024)
	for i := 0; i < len(frames); i++ {
		requestID, data, err := readFrame(server, buf)
		if err != nil {
			t.Fatalf("readFrame failed: %v", err)
		}
		expected, ok := frames[requestID]
		if !ok {
			t.Fatalf("unexpected requestID %d", requestID)
		}
		if !bytes.Equal(data, expected) {
			t.Errorf("requestID %d: expected %q, got %q", requestID, expected, data)
		}
	}
}
