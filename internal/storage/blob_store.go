// Package storage writes résumé files to an S3-compatible container and
// issues time-limited read links for them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"
)

// ErrSigningUnavailable is returned by SignRead when the store was built
// without the account secret.
var ErrSigningUnavailable = errors.New("blob signing credentials not configured")

// BlobStore stores raw files under caller-chosen keys.
type BlobStore interface {
	// Put writes r under key and returns the blob's direct location.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// SignRead returns a read-only URL for exactly key that expires after ttl.
	SignRead(ctx context.Context, key string, ttl time.Duration) (string, error)
	// CanSign reports whether SignRead can succeed.
	CanSign() bool
}

// Options configure either driver.
type Options struct {
	Driver    string
	Endpoint  string
	UseSSL    bool
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

func (o Options) endpointURL() *url.URL {
	scheme := "https"
	if !o.UseSSL {
		scheme = "http"
	}
	return &url.URL{Scheme: scheme, Host: o.Endpoint}
}

// New returns the BlobStore for opts.Driver ("minio" when empty).
func New(ctx context.Context, opts Options) (BlobStore, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	switch opts.Driver {
	case "", "minio":
		return NewMinioStore(opts)
	case "s3":
		return NewS3Store(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// directURL is the path-style location of key inside bucket.
func directURL(endpoint *url.URL, bucket, key string) string {
	return endpoint.JoinPath(bucket, key).String()
}
