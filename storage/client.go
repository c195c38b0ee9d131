// Package storage wraps the S3 operations needed to tear down buckets and
// publish static websites.
//
// The Client talks to S3 through the narrow s3api.S3API interface so that
// every operation can be exercised against a mock in tests. Errors are
// returned as *errors.Error values carrying the operation, bucket and key,
// and wrap package sentinels for use with errors.Is.
package storage

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage/s3api"
)

const (
	// DefaultRegion is used when neither the options nor the AWS config name a region.
	DefaultRegion = "us-east-1"

	// DefaultContentType is used when content type detection fails.
	DefaultContentType = "application/octet-stream"

	// maxDeleteBatch is the S3 limit on keys per DeleteObjects request.
	maxDeleteBatch = 1000
)

// Client performs bucket and object operations against S3.
type Client struct {
	api       s3api.S3API
	fs        fs.Filesystem
	logger    *zap.Logger
	region    string
	pathStyle bool
}

// New creates a Client from an AWS configuration.
//
// Example:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    return err
//	}
//	client := storage.New(cfg, storage.WithForcePathStyle(true))
func New(cfg aws.Config, opts ...Option) *Client {
	c := newClient(cfg.Region, opts...)

	c.api = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.pathStyle
	})

	return c
}

// NewWithClient creates a Client around a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(api s3api.S3API, opts ...Option) *Client {
	c := newClient("", opts...)
	c.api = api
	return c
}

func newClient(region string, opts ...Option) *Client {
	c := &Client{
		fs:     fs.NewOSFS(),
		logger: zap.NewNop(),
		region: region,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.region == "" {
		c.region = DefaultRegion
	}

	return c
}

// Region returns the region the client creates buckets in.
func (c *Client) Region() string {
	return c.region
}
