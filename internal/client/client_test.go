package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, fh, err := r.FormFile("resume")
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"success":false,"message":"resume file is required"}`)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)

		var skills []string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("skills")), &skills))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Resume uploaded successfully",
			"data": map[string]any{
				"id":               "c1",
				"name":             r.FormValue("name"),
				"skills":           skills,
				"resumeUrl":        "https://blobs.example.com/resumes/" + fh.Filename,
				"originalFileName": fh.Filename + ":" + string(body),
				"uploadedAt":       time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC),
			},
		})
	})
	mux.HandleFunc("GET /api/candidates", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("skill") == "Go" {
			_, _ = io.WriteString(w, `[{"id":"c1","name":"Jane","skills":["Go"],"resumeUrl":"u","uploadedAt":"2024-06-10T08:00:00Z"}]`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})
	mux.HandleFunc("GET /api/download/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "c1" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"candidate not found"}`)
			return
		}
		http.Redirect(w, r, "https://blobs.example.com/resumes/cv.pdf?X-Amz-Expires=600", http.StatusFound)
	})
	mux.HandleFunc("GET /api/skills", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `["JavaScript","Go"]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestUpload(t *testing.T) {
	c := New(newServer(t).URL, 5*time.Second)

	got, err := c.Upload(context.Background(), UploadRequest{
		Name:     "Jane",
		Skills:   []string{"Java", "SQL"},
		FileName: "cv.pdf",
		File:     strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, []string{"Java", "SQL"}, got.Skills)
	assert.Equal(t, "cv.pdf:%PDF-1.4", got.OriginalFileName)
}

func TestCandidates(t *testing.T) {
	c := New(newServer(t).URL, 5*time.Second)

	got, err := c.Candidates(context.Background(), "Go")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane", got[0].Name)

	none, err := c.Candidates(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDownloadLinkDoesNotFollowRedirect(t *testing.T) {
	c := New(newServer(t).URL, 5*time.Second)

	link, err := c.DownloadLink(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.example.com/resumes/cv.pdf?X-Amz-Expires=600", link)

	_, err = c.DownloadLink(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "candidate not found", apiErr.Message)
}

func TestSkills(t *testing.T) {
	c := New(newServer(t).URL, 5*time.Second)

	got, err := c.Skills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"JavaScript", "Go"}, got)
}
