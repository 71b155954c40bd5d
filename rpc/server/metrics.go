package server

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/tallykv/tallykv/rpc/common"
)

// --------------------------------------------------------------------------
// Request Metrics
// --------------------------------------------------------------------------

// countRequest increments the per-operation request counter, and the error
// counter if the operation failed. The http transport exposes these on
// GET /metrics.
func countRequest(op common.MessageType, failed bool) {
	metrics.GetOrCreateCounter(
		fmt.Sprintf(`tallykv_requests_total{op=%q}`, op.String()),
	).Inc()

	if failed {
		metrics.GetOrCreateCounter(
			fmt.Sprintf(`tallykv_request_errors_total{op=%q}`, op.String()),
		).Inc()
	}
}
