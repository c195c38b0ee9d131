// Package s3api defines the narrow S3 interface used by the storage client so
// that tests can substitute a mock for the AWS SDK client.
package s3api

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the S3 operations used by this module.
type S3API interface {
	// ListBuckets lists the buckets owned by the caller
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)

	// HeadBucket checks that a bucket exists and is reachable
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)

	// CreateBucket creates a new bucket
	CreateBucket(
		ctx context.Context,
		params *s3.CreateBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.CreateBucketOutput, error)

	// DeleteBucket deletes an empty bucket
	DeleteBucket(
		ctx context.Context,
		params *s3.DeleteBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteBucketOutput, error)

	// ListObjectsV2 lists objects in a bucket
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)

	// DeleteObjects deletes up to 1000 objects in one request
	DeleteObjects(
		ctx context.Context,
		params *s3.DeleteObjectsInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)

	// PutObject uploads an object
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)

	// PutBucketWebsite configures static website hosting
	PutBucketWebsite(
		ctx context.Context,
		params *s3.PutBucketWebsiteInput,
		optFns ...func(*s3.Options),
	) (*s3.PutBucketWebsiteOutput, error)

	// PutPublicAccessBlock sets the bucket's public access block
	PutPublicAccessBlock(
		ctx context.Context,
		params *s3.PutPublicAccessBlockInput,
		optFns ...func(*s3.Options),
	) (*s3.PutPublicAccessBlockOutput, error)

	// PutBucketPolicy attaches a bucket policy
	PutBucketPolicy(
		ctx context.Context,
		params *s3.PutBucketPolicyInput,
		optFns ...func(*s3.Options),
	) (*s3.PutBucketPolicyOutput, error)
}

// Verify that the AWS S3 client implements our interface
var _ S3API = (*s3.Client)(nil)
