package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements BlobStore with the AWS SDK. It also serves R2 and other
// S3 endpoints when Options.Endpoint is set.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	base      *url.URL
	canSign   bool
}

func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {
	canSign := opts.AccessKey != "" && opts.SecretKey != ""
	var provider aws.CredentialsProvider = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	if !canSign {
		provider = aws.AnonymousCredentials{}
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(provider),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var base *url.URL
	if opts.Endpoint != "" {
		base = opts.endpointURL()
	} else {
		base = &url.URL{Scheme: "https", Host: fmt.Sprintf("s3.%s.amazonaws.com", region)}
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(base.String())
			o.UsePathStyle = true
		}
	})
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
		base:      base,
		canSign:   canSign,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return directURL(s.base, s.bucket, key), nil
}

func (s *S3Store) SignRead(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if !s.canSign {
		return "", ErrSigningUnavailable
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}

func (s *S3Store) CanSign() bool { return s.canSign }
