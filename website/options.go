package website

import (
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
)

// DefaultDocument is served for both the index and error pages.
const DefaultDocument = "index.html"

// Progress receives deployment events, in the order they happen.
type Progress interface {
	// BucketCreated is called after a new bucket is created.
	BucketCreated(bucket string)

	// BucketReused is called when the bucket already belongs to the caller.
	BucketReused(bucket string)

	// BucketEmptied is called after an existing bucket was emptied.
	BucketEmptied(bucket string, deleted int)

	// UploadStarted is called once with the number of files to upload.
	UploadStarted(total int)

	// FileUploaded is called after every successful upload.
	FileUploaded(key string)
}

type nopProgress struct{}

func (nopProgress) BucketCreated(string)      {}
func (nopProgress) BucketReused(string)       {}
func (nopProgress) BucketEmptied(string, int) {}
func (nopProgress) UploadStarted(int)         {}
func (nopProgress) FileUploaded(string)       {}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the logger used by the deployer.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Deployer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithFilesystem sets the filesystem the source directory is read from.
// It must be the same filesystem the Store reads uploads from.
func WithFilesystem(filesystem fs.Filesystem) Option {
	return func(d *Deployer) {
		if filesystem != nil {
			d.fs = filesystem
		}
	}
}

// WithRegion sets the region used in the website URL.
// Default is the Store's region.
func WithRegion(region string) Option {
	return func(d *Deployer) {
		if region != "" {
			d.region = region
		}
	}
}

// WithIndexDocument sets the website index document.
func WithIndexDocument(name string) Option {
	return func(d *Deployer) {
		if name != "" {
			d.website.IndexDocument = name
		}
	}
}

// WithErrorDocument sets the website error document.
func WithErrorDocument(name string) Option {
	return func(d *Deployer) {
		if name != "" {
			d.website.ErrorDocument = name
		}
	}
}

// WithProgress sets the receiver of deployment events.
func WithProgress(p Progress) Option {
	return func(d *Deployer) {
		if p != nil {
			d.progress = p
		}
	}
}

// WithReconfigure also applies website hosting, public access and policy to
// a bucket that already existed.
func WithReconfigure(reconfigure bool) Option {
	return func(d *Deployer) {
		d.reconfigure = reconfigure
	}
}
