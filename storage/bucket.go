package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// ListBuckets returns every bucket owned by the caller, following pagination.
func (c *Client) ListBuckets(ctx context.Context) ([]Bucket, error) {
	var buckets []Bucket

	paginator := s3.NewListBucketsPaginator(c.api, &s3.ListBucketsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storageerrors.NewError("listBuckets", convertAWSError(err))
		}

		for _, b := range page.Buckets {
			buckets = append(buckets, Bucket{
				Name:      aws.ToString(b.Name),
				Region:    aws.ToString(b.BucketRegion),
				CreatedAt: aws.ToTime(b.CreationDate),
			})
		}
	}

	c.logger.Debug("listed buckets", zap.Int("count", len(buckets)))
	return buckets, nil
}

// BucketExists reports whether the bucket exists and is reachable.
// A missing bucket is reported as false with a nil error.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if bucket == "" {
		return false, storageerrors.NewError("bucketExists", storageerrors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		converted := convertAWSError(err)
		if errors.Is(converted, storageerrors.ErrBucketNotFound) {
			return false, nil
		}
		return false, storageerrors.NewBucketError("bucketExists", bucket, converted)
	}

	return true, nil
}

// CreateBucket creates a bucket in the client's region.
//
// A location constraint is sent for every region except us-east-1, which
// rejects it. When the caller already owns the bucket the returned error
// wraps ErrBucketAlreadyOwned; when another account owns it, ErrBucketAlreadyExists.
func (c *Client) CreateBucket(ctx context.Context, bucket string) error {
	if err := ValidateBucketName(bucket); err != nil {
		return err
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if c.region != DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	if _, err := c.api.CreateBucket(ctx, input); err != nil {
		return storageerrors.NewBucketError("createBucket", bucket, convertAWSError(err))
	}

	c.logger.Debug("created bucket", zap.String("bucket", bucket), zap.String("region", c.region))
	return nil
}

// DeleteBucket deletes an empty bucket.
// Use EmptyBucket first; a bucket that still holds objects yields ErrBucketNotEmpty.
func (c *Client) DeleteBucket(ctx context.Context, bucket string) error {
	// Legacy buckets may not satisfy the current naming rules, so only
	// reject the empty name here.
	if bucket == "" {
		return storageerrors.NewError("deleteBucket", storageerrors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	if _, err := c.api.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return storageerrors.NewBucketError("deleteBucket", bucket, convertAWSError(err))
	}

	c.logger.Debug("deleted bucket", zap.String("bucket", bucket))
	return nil
}
