// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/document-template-engine/backend/internal/platform/metrics"
)

// Metrics records request counts and latencies into the private Prometheus
// registry.
//
// # Usage
//
// Register early in the chain so the recorded latency covers the full
// downstream stack.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrappedWriter, request)

			m.HTTPRequestsTotal.WithLabelValues(
				request.Method, strconv.Itoa(wrappedWriter.status)).Inc()
			m.HTTPRequestDurationSeconds.WithLabelValues(
				request.Method).Observe(time.Since(startTime).Seconds())
		})
	}
}
