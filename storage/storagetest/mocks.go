// Package storagetest provides test doubles and LocalStack helpers for code
// built on the storage package.
package storagetest

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/infra/storage/s3api"
)

// MockS3Client is a mock implementation of s3api.S3API. Each operation can be
// customized through its function field; unset fields return an empty output.
// Every call is recorded by operation name.
type MockS3Client struct {
	ListBucketsFunc          func(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	HeadBucketFunc           func(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucketFunc         func(context.Context, *s3.CreateBucketInput, ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	DeleteBucketFunc         func(context.Context, *s3.DeleteBucketInput, ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
	ListObjectsV2Func        func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjectsFunc        func(context.Context, *s3.DeleteObjectsInput, ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	PutObjectFunc            func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutBucketWebsiteFunc     func(context.Context, *s3.PutBucketWebsiteInput, ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error)
	PutPublicAccessBlockFunc func(context.Context, *s3.PutPublicAccessBlockInput, ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
	PutBucketPolicyFunc      func(context.Context, *s3.PutBucketPolicyInput, ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)

	mu    sync.Mutex
	calls []string
}

var _ s3api.S3API = (*MockS3Client)(nil)

// Calls returns the operation names invoked so far, in order.
func (m *MockS3Client) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockS3Client) record(op string) {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	m.mu.Unlock()
}

// ListBuckets mocks the S3 ListBuckets operation.
func (m *MockS3Client) ListBuckets(
	ctx context.Context,
	params *s3.ListBucketsInput,
	optFns ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	m.record("ListBuckets")
	if m.ListBucketsFunc != nil {
		return m.ListBucketsFunc(ctx, params, optFns...)
	}
	return &s3.ListBucketsOutput{}, nil
}

// HeadBucket mocks the S3 HeadBucket operation.
func (m *MockS3Client) HeadBucket(
	ctx context.Context,
	params *s3.HeadBucketInput,
	optFns ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	m.record("HeadBucket")
	if m.HeadBucketFunc != nil {
		return m.HeadBucketFunc(ctx, params, optFns...)
	}
	return &s3.HeadBucketOutput{}, nil
}

// CreateBucket mocks the S3 CreateBucket operation.
func (m *MockS3Client) CreateBucket(
	ctx context.Context,
	params *s3.CreateBucketInput,
	optFns ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	m.record("CreateBucket")
	if m.CreateBucketFunc != nil {
		return m.CreateBucketFunc(ctx, params, optFns...)
	}
	return &s3.CreateBucketOutput{}, nil
}

// DeleteBucket mocks the S3 DeleteBucket operation.
func (m *MockS3Client) DeleteBucket(
	ctx context.Context,
	params *s3.DeleteBucketInput,
	optFns ...func(*s3.Options),
) (*s3.DeleteBucketOutput, error) {
	m.record("DeleteBucket")
	if m.DeleteBucketFunc != nil {
		return m.DeleteBucketFunc(ctx, params, optFns...)
	}
	return &s3.DeleteBucketOutput{}, nil
}

// ListObjectsV2 mocks the S3 ListObjectsV2 operation.
func (m *MockS3Client) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	m.record("ListObjectsV2")
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}
	return &s3.ListObjectsV2Output{}, nil
}

// DeleteObjects mocks the S3 DeleteObjects operation.
func (m *MockS3Client) DeleteObjects(
	ctx context.Context,
	params *s3.DeleteObjectsInput,
	optFns ...func(*s3.Options),
) (*s3.DeleteObjectsOutput, error) {
	m.record("DeleteObjects")
	if m.DeleteObjectsFunc != nil {
		return m.DeleteObjectsFunc(ctx, params, optFns...)
	}
	return &s3.DeleteObjectsOutput{}, nil
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	m.record("PutObject")
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// PutBucketWebsite mocks the S3 PutBucketWebsite operation.
func (m *MockS3Client) PutBucketWebsite(
	ctx context.Context,
	params *s3.PutBucketWebsiteInput,
	optFns ...func(*s3.Options),
) (*s3.PutBucketWebsiteOutput, error) {
	m.record("PutBucketWebsite")
	if m.PutBucketWebsiteFunc != nil {
		return m.PutBucketWebsiteFunc(ctx, params, optFns...)
	}
	return &s3.PutBucketWebsiteOutput{}, nil
}

// PutPublicAccessBlock mocks the S3 PutPublicAccessBlock operation.
func (m *MockS3Client) PutPublicAccessBlock(
	ctx context.Context,
	params *s3.PutPublicAccessBlockInput,
	optFns ...func(*s3.Options),
) (*s3.PutPublicAccessBlockOutput, error) {
	m.record("PutPublicAccessBlock")
	if m.PutPublicAccessBlockFunc != nil {
		return m.PutPublicAccessBlockFunc(ctx, params, optFns...)
	}
	return &s3.PutPublicAccessBlockOutput{}, nil
}

// PutBucketPolicy mocks the S3 PutBucketPolicy operation.
func (m *MockS3Client) PutBucketPolicy(
	ctx context.Context,
	params *s3.PutBucketPolicyInput,
	optFns ...func(*s3.Options),
) (*s3.PutBucketPolicyOutput, error) {
	m.record("PutBucketPolicy")
	if m.PutBucketPolicyFunc != nil {
		return m.PutBucketPolicyFunc(ctx, params, optFns...)
	}
	return &s3.PutBucketPolicyOutput{}, nil
}
