// Package metrics exposes Prometheus counters for uploads, queries and
// download links.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "talent_vault"

// Upload outcomes.
const (
	UploadOK             = "ok"
	UploadInvalid        = "invalid"
	UploadStorageFailed  = "storage_error"
	UploadDatabaseFailed = "database_error"
	UploadInternalFailed = "internal_error"
)

// Download link kinds.
const (
	LinkSigned = "signed"
	LinkDirect = "direct"
)

// Manager owns a private registry so tests can build as many as they like.
// A nil *Manager records nothing.
type Manager struct {
	registry *prometheus.Registry

	uploads          *prometheus.CounterVec
	orphanedBlobs    prometheus.Counter
	downloadLinks    *prometheus.CounterVec
	candidateQueries *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func New() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Manager{
		registry: reg,
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Résumé uploads by outcome.",
		}, []string{"result"}),
		orphanedBlobs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphaned_blobs_total",
			Help:      "Blobs stored without a matching candidate record.",
		}),
		downloadLinks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "download_links_total",
			Help:      "Download links issued by kind.",
		}, []string{"kind"}),
		candidateQueries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidate_queries_total",
			Help:      "Candidate list queries, split by whether a skill filter was given.",
		}, []string{"filtered"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Manager) RecordUpload(result string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result).Inc()
}

func (m *Manager) RecordOrphanedBlob() {
	if m == nil {
		return
	}
	m.orphanedBlobs.Inc()
}

func (m *Manager) RecordDownloadLink(kind string) {
	if m == nil {
		return
	}
	m.downloadLinks.WithLabelValues(kind).Inc()
}

func (m *Manager) RecordCandidateQuery(filtered bool) {
	if m == nil {
		return
	}
	m.candidateQueries.WithLabelValues(strconv.FormatBool(filtered)).Inc()
}

// Middleware records request count and latency keyed by the matched route
// pattern, never the raw path.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
