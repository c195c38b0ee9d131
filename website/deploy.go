// Package website publishes a local directory as an S3 static website.
//
// A Deployer creates the site bucket (or empties it when the caller already
// owns it), turns on website hosting with public read access, and uploads
// every file in the directory under its relative path.
package website

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// ErrNotDirectory indicates that the source path is missing or is not a directory.
var ErrNotDirectory = errors.New("website: source is not a directory")

// Store is the subset of storage.Client a Deployer needs.
type Store interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
	EmptyBucket(ctx context.Context, bucket string) (*storage.EmptyResult, error)
	PutWebsite(ctx context.Context, bucket string, cfg storage.WebsiteConfig) error
	PutPublicAccessBlock(ctx context.Context, bucket string, block storage.PublicAccessBlock) error
	PutBucketPolicy(ctx context.Context, bucket, policy string) error
	UploadFile(ctx context.Context, bucket, key, path string) (*storage.UploadResult, error)
	Region() string
}

var _ Store = (*storage.Client)(nil)

// File is a local file and the object key it is uploaded under.
type File struct {
	Path string
	Key  string
}

// Result describes a finished deployment.
type Result struct {
	Bucket string
	Region string

	// Created is true when the bucket did not exist before the run.
	Created bool

	// Emptied is the number of objects removed from a reused bucket.
	Emptied int

	// Uploaded lists the keys written, in upload order.
	Uploaded []string

	URL string
}

// Deployer uploads directories to website buckets.
type Deployer struct {
	store       Store
	fs          fs.Filesystem
	logger      *zap.Logger
	progress    Progress
	region      string
	website     storage.WebsiteConfig
	reconfigure bool
}

// New creates a Deployer that writes through store.
func New(store Store, opts ...Option) *Deployer {
	d := &Deployer{
		store:    store,
		fs:       fs.NewOSFS(),
		logger:   zap.NewNop(),
		progress: nopProgress{},
		website: storage.WebsiteConfig{
			IndexDocument: DefaultDocument,
			ErrorDocument: DefaultDocument,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.region == "" {
		d.region = store.Region()
	}
	return d
}

// Files lists the files under dir in lexical order, each with its object key.
func (d *Deployer) Files(dir string) ([]File, error) {
	info, err := d.fs.Stat(dir)
	if err != nil {
		if fs.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []File
	err = d.fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := d.fs.Stat(path)
			if err != nil || target.IsDir() {
				d.logger.Debug("skipping symlink", zap.String("path", path))
				return nil
			}
		}

		key, err := Key(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, Key: key})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", dir, err)
	}

	return files, nil
}

// Deploy uploads every file in dir to bucket and returns the website URL.
//
// A new bucket is configured for public website hosting. A bucket the caller
// already owns is emptied first; a failure while emptying is logged and the
// upload continues. Any other bucket creation error is returned.
func (d *Deployer) Deploy(ctx context.Context, dir, bucket string) (*Result, error) {
	files, err := d.Files(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Bucket: bucket,
		Region: d.region,
		URL:    storage.WebsiteURL(bucket, d.region),
	}

	created, err := d.createBucket(ctx, bucket)
	if err != nil {
		return result, err
	}

	if created {
		result.Created = true
		d.progress.BucketCreated(bucket)
		if err := d.configure(ctx, bucket); err != nil {
			return result, err
		}
	} else {
		d.progress.BucketReused(bucket)
		result.Emptied = d.empty(ctx, bucket)
		if d.reconfigure {
			if err := d.configure(ctx, bucket); err != nil {
				return result, err
			}
		}
	}

	d.progress.UploadStarted(len(files))
	for _, f := range files {
		if _, err := d.store.UploadFile(ctx, bucket, f.Key, f.Path); err != nil {
			return result, fmt.Errorf("failed to upload %s: %w", f.Path, err)
		}
		result.Uploaded = append(result.Uploaded, f.Key)
		d.progress.FileUploaded(f.Key)
	}

	d.logger.Info("deployed website",
		zap.String("bucket", bucket),
		zap.Int("files", len(result.Uploaded)),
		zap.String("url", result.URL),
	)
	return result, nil
}

// createBucket creates bucket unless the caller can already reach it, and
// reports whether it was created. S3 answers CreateBucket on an owned bucket
// with success in us-east-1, so existence is checked first. A HeadBucket
// failure (e.g. 403 for a bucket owned by another account) falls through to
// CreateBucket, which reports the precise reason.
func (d *Deployer) createBucket(ctx context.Context, bucket string) (bool, error) {
	exists, err := d.store.BucketExists(ctx, bucket)
	if err != nil {
		d.logger.Debug("bucket existence check failed", zap.String("bucket", bucket), zap.Error(err))
	}
	if exists {
		return false, nil
	}

	err = d.store.CreateBucket(ctx, bucket)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storageerrors.ErrBucketAlreadyOwned):
		return false, nil
	default:
		return false, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
}

// configure turns on website hosting, lifts the public access block and
// attaches the public-read policy, in that order.
func (d *Deployer) configure(ctx context.Context, bucket string) error {
	if err := d.store.PutWebsite(ctx, bucket, d.website); err != nil {
		return fmt.Errorf("failed to configure website hosting: %w", err)
	}
	if err := d.store.PutPublicAccessBlock(ctx, bucket, storage.AllowPublic()); err != nil {
		return fmt.Errorf("failed to configure public access block: %w", err)
	}

	policy, err := PublicReadPolicy(bucket)
	if err != nil {
		return err
	}
	if err := d.store.PutBucketPolicy(ctx, bucket, policy); err != nil {
		return fmt.Errorf("failed to attach bucket policy: %w", err)
	}

	d.logger.Debug("configured website bucket", zap.String("bucket", bucket))
	return nil
}

// empty removes existing objects and returns how many were deleted.
// Errors are logged, never returned.
func (d *Deployer) empty(ctx context.Context, bucket string) int {
	res, err := d.store.EmptyBucket(ctx, bucket)
	if err != nil {
		d.logger.Error("error while emptying bucket", zap.String("bucket", bucket), zap.Error(err))
	}
	if res == nil {
		return 0
	}

	for _, key := range res.Keys {
		d.logger.Info("deleted object", zap.String("bucket", bucket), zap.String("key", key))
	}
	for _, e := range res.Errors {
		d.logger.Error("error while emptying bucket",
			zap.String("bucket", bucket),
			zap.String("key", e.Key),
			zap.String("code", e.Code),
			zap.String("message", e.Message),
		)
	}
	d.progress.BucketEmptied(bucket, res.Deleted)
	return res.Deleted
}
