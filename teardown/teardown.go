// Package teardown deletes S3 buckets together with their contents.
package teardown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// ErrNoBuckets indicates that Delete was called without bucket names.
var ErrNoBuckets = errors.New("teardown: no buckets given")

// Store is the subset of storage.Client a Remover needs.
type Store interface {
	ListBuckets(ctx context.Context) ([]storage.Bucket, error)
	EmptyBucket(ctx context.Context, bucket string) (*storage.EmptyResult, error)
	DeleteBucket(ctx context.Context, bucket string) error
}

var _ Store = (*storage.Client)(nil)

// Result describes a finished run.
type Result struct {
	// Targets are the buckets selected for deletion, in processing order.
	Targets []string

	// Deleted are the buckets removed so far.
	Deleted []string

	// Objects is the total number of objects removed.
	Objects int

	DryRun bool
}

// Option configures a Remover.
type Option func(*Remover)

// WithLogger sets the logger used by the remover.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Remover) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPrefix restricts DeleteAll to buckets whose name starts with prefix.
func WithPrefix(prefix string) Option {
	return func(r *Remover) {
		r.prefix = prefix
	}
}

// WithDryRun selects the buckets but deletes nothing.
func WithDryRun(dryRun bool) Option {
	return func(r *Remover) {
		r.dryRun = dryRun
	}
}

// WithProgress sets a callback invoked before each bucket is deleted.
func WithProgress(fn func(bucket string)) Option {
	return func(r *Remover) {
		r.progress = fn
	}
}

// Remover empties and deletes buckets, one at a time.
type Remover struct {
	store    Store
	logger   *zap.Logger
	prefix   string
	dryRun   bool
	progress func(bucket string)
}

// New creates a Remover that works through store.
func New(store Store, opts ...Option) *Remover {
	r := &Remover{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Candidates returns the buckets DeleteAll would remove.
func (r *Remover) Candidates(ctx context.Context) ([]storage.Bucket, error) {
	buckets, err := r.store.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	var matched []storage.Bucket
	for _, b := range buckets {
		if strings.HasPrefix(b.Name, r.prefix) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// DeleteAll empties and deletes every bucket in the account, or every bucket
// matching the configured prefix. The first failure stops the run.
func (r *Remover) DeleteAll(ctx context.Context) (*Result, error) {
	buckets, err := r.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return r.run(ctx, names)
}

// Delete empties and deletes the named buckets in order.
// The first failure stops the run.
func (r *Remover) Delete(ctx context.Context, names ...string) (*Result, error) {
	if len(names) == 0 {
		return nil, ErrNoBuckets
	}
	return r.run(ctx, names)
}

func (r *Remover) run(ctx context.Context, names []string) (*Result, error) {
	result := &Result{Targets: names, DryRun: r.dryRun}

	for _, name := range names {
		if r.progress != nil {
			r.progress(name)
		}
		if r.dryRun {
			r.logger.Info("dry run, skipping bucket", zap.String("bucket", name))
			continue
		}

		n, err := r.remove(ctx, name)
		result.Objects += n
		if err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, name)
	}

	return result, nil
}

// remove empties one bucket and deletes it, returning how many objects went with it.
func (r *Remover) remove(ctx context.Context, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	emptied, err := r.store.EmptyBucket(ctx, name)
	deleted := 0
	if emptied != nil {
		deleted = emptied.Deleted
	}
	if err != nil {
		return deleted, fmt.Errorf("failed to empty bucket %s: %w", name, err)
	}
	if emptied != nil && len(emptied.Errors) > 0 {
		first := emptied.Errors[0]
		return deleted, fmt.Errorf("failed to empty bucket %s: %w: %d objects not deleted, first %s: %s",
			name, storageerrors.ErrBucketNotEmpty, len(emptied.Errors), first.Key, first.Code)
	}

	if err := r.store.DeleteBucket(ctx, name); err != nil {
		return deleted, fmt.Errorf("failed to delete bucket %s: %w", name, err)
	}

	r.logger.Info("deleted bucket", zap.String("bucket", name), zap.Int("objects", deleted))
	return deleted, nil
}
