// Package client is a thin HTTP client for the talent-vault API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fadilmartias/talent-vault/internal/dto"
	"github.com/fadilmartias/talent-vault/internal/util"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	return &Client{http: rc}
}

type UploadRequest struct {
	Name     string
	Skills   []string
	FileName string
	File     io.Reader
}

// Upload sends the skills as a JSON array, the same encoding the web form uses.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*dto.CandidateDTO, error) {
	skills, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, err
	}
	var out dto.UploadResponseDTO
	var apiErr util.OrderedErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"name":   req.Name,
			"skills": string(skills),
		}).
		SetFileReader("resume", req.FileName, req.File).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/upload")
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Message: apiErr.Message}
	}
	return &out.Data, nil
}

// Candidates lists every candidate, or only those with skill when set.
func (c *Client) Candidates(ctx context.Context, skill string) ([]dto.CandidateDTO, error) {
	var out []dto.CandidateDTO
	var apiErr util.OrderedErrorResponse
	r := c.http.R().SetContext(ctx).SetResult(&out).SetError(&apiErr)
	if skill != "" {
		r.SetQueryParam("skill", skill)
	}
	resp, err := r.Get("/api/candidates")
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Message: apiErr.Message}
	}
	if out == nil {
		out = []dto.CandidateDTO{}
	}
	return out, nil
}

// DownloadLink returns the redirect target for a candidate's résumé without
// following it.
func (c *Client) DownloadLink(ctx context.Context, id string) (string, error) {
	var apiErr util.OrderedErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&apiErr).
		Get("/api/download/{id}")
	if err != nil {
		return "", fmt.Errorf("download link: %w", err)
	}
	if resp.IsError() {
		return "", &APIError{Status: resp.StatusCode(), Message: apiErr.Message}
	}
	if resp.StatusCode() != http.StatusFound {
		return "", &APIError{Status: resp.StatusCode(), Message: "expected redirect"}
	}
	location := resp.Header().Get("Location")
	if location == "" {
		return "", errors.New("download link: redirect without location")
	}
	return location, nil
}

func (c *Client) Skills(ctx context.Context) ([]string, error) {
	var out []string
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/api/skills")
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode()}
	}
	return out, nil
}
