package storage

import (
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFilesystem sets the filesystem used to read files for upload.
// Default is the host filesystem.
func WithFilesystem(filesystem fs.Filesystem) Option {
	return func(c *Client) {
		if filesystem != nil {
			c.fs = filesystem
		}
	}
}

// WithRegion overrides the region used for bucket location constraints.
// Default is the region of the aws.Config, or us-east-1 when that is empty.
func WithRegion(region string) Option {
	return func(c *Client) {
		if region != "" {
			c.region = region
		}
	}
}

// WithForcePathStyle forces path-style addressing instead of virtual-hosted style.
// This is required for LocalStack and other S3-compatible endpoints.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *Client) {
		c.pathStyle = forcePathStyle
	}
}
