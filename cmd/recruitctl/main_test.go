package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSkillsAndLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/skills", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `["Go"]`)
	})
	mux.HandleFunc("GET /api/download/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://blobs.example.com/x.pdf", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-url", srv.URL, "skills"}, &out))
	assert.JSONEq(t, `["Go"]`, out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"-url", srv.URL, "link", "-id", "c1"}, &out))
	assert.Equal(t, "https://blobs.example.com/x.pdf\n", out.String())
}

func TestRunRejectsBadUsage(t *testing.T) {
	assert.Error(t, run(context.Background(), nil, io.Discard))
	assert.Error(t, run(context.Background(), []string{"frobnicate"}, io.Discard))
	assert.Error(t, run(context.Background(), []string{"link"}, io.Discard))
	assert.Error(t, run(context.Background(), []string{"upload", "-name", "x"}, io.Discard))
}
