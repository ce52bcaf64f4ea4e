// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

// Package metrics defines the Prometheus instrumentation for the service.
//
// # Architecture
//
// All metrics live in a private registry so that the /metrics endpoint only
// exposes what the service deliberately registers, never global state leaked
// by third-party libraries.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the document template service.
type Metrics struct {
	// Rendering
	RendersTotal          *prometheus.CounterVec
	RenderDurationSeconds *prometheus.HistogramVec
	RenderErrorsTotal     prometheus.Counter

	// Template lifecycle
	TemplateUploadsTotal   prometheus.Counter
	ConsistencyChecksTotal *prometheus.CounterVec

	// Document delivery
	DocumentDownloadsTotal *prometheus.CounterVec
	ConversionsTotal       *prometheus.CounterVec

	// HTTP layer
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with every collector registered in a
// private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctemplate_renders_total",
				Help: "Total number of document renders",
			},
			[]string{"mode"},
		),
		RenderDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "doctemplate_render_duration_seconds",
				Help:    "Time spent rendering a document",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		RenderErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "doctemplate_render_errors_total",
				Help: "Total number of failed renders",
			},
		),

		TemplateUploadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "doctemplate_template_uploads_total",
				Help: "Total number of uploaded template files",
			},
		),
		ConsistencyChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctemplate_consistency_checks_total",
				Help: "Total number of template consistency checks",
			},
			[]string{"result"},
		),

		DocumentDownloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctemplate_document_downloads_total",
				Help: "Total number of document downloads",
			},
			[]string{"format"},
		),
		ConversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctemplate_conversions_total",
				Help: "Total number of PDF conversions",
			},
			[]string{"status"},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctemplate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "doctemplate_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.RendersTotal,
		m.RenderDurationSeconds,
		m.RenderErrorsTotal,
		m.TemplateUploadsTotal,
		m.ConsistencyChecksTotal,
		m.DocumentDownloadsTotal,
		m.ConversionsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
	)

	// Runtime metrics (goroutines, GC, memory).
	reg.MustRegister(collectors.NewGoCollector())

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
