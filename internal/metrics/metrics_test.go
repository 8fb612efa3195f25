package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_counters(t *testing.T) {
	m := New()

	m.RecordUpload(UploadOK)
	m.RecordUpload(UploadOK)
	m.RecordUpload(UploadInvalid)
	m.RecordOrphanedBlob()
	m.RecordDownloadLink(LinkSigned)
	m.RecordCandidateQuery(true)
	m.RecordCandidateQuery(false)
	m.RecordCandidateQuery(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploads.WithLabelValues(UploadOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues(UploadInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orphanedBlobs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.downloadLinks.WithLabelValues(LinkSigned)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.downloadLinks.WithLabelValues(LinkDirect)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.candidateQueries.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.candidateQueries.WithLabelValues("false")))
}

func TestManager_nilIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.RecordUpload(UploadOK)
		m.RecordOrphanedBlob()
		m.RecordDownloadLink(LinkDirect)
		m.RecordCandidateQuery(true)
	})
}

func TestMiddleware_usesRoutePattern(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/download/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/download/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/download/:id", "302")))
}

func TestHandler_exposesRegistry(t *testing.T) {
	m := New()
	m.RecordOrphanedBlob()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "talent_vault_orphaned_blobs_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
