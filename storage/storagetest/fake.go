package storagetest

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/input-output-hk/catalyst-forge-libs/infra/storage/s3api"
)

// FakeObject is an object held by FakeS3.
type FakeObject struct {
	Body        []byte
	ContentType string
}

// FakeBucket is the state FakeS3 keeps per bucket.
type FakeBucket struct {
	Objects      map[string]FakeObject
	Website      *types.WebsiteConfiguration
	PublicAccess *types.PublicAccessBlockConfiguration
	Policy       string
	CreatedAt    time.Time
}

// FakeS3 is an in-memory S3 that implements s3api.S3API. It models only the
// behaviour the storage client relies on: bucket ownership, emptiness checks
// on delete, and object listing in key order.
type FakeS3 struct {
	// LegacyRegion makes CreateBucket on an owned bucket succeed without
	// touching it, as S3 does in us-east-1.
	LegacyRegion bool

	mu      sync.Mutex
	buckets map[string]*FakeBucket
}

var _ s3api.S3API = (*FakeS3)(nil)

// NewFakeS3 returns an empty FakeS3.
func NewFakeS3() *FakeS3 {
	return &FakeS3{buckets: make(map[string]*FakeBucket)}
}

// AddBucket creates a bucket holding the given objects, keyed by name.
func (f *FakeS3) AddBucket(name string, objects map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := &FakeBucket{Objects: make(map[string]FakeObject), CreatedAt: time.Now()}
	for key, body := range objects {
		b.Objects[key] = FakeObject{Body: []byte(body)}
	}
	f.buckets[name] = b
}

// Bucket returns a copy of the named bucket's state.
func (f *FakeS3) Bucket(name string) (FakeBucket, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.buckets[name]
	if !ok {
		return FakeBucket{}, false
	}

	cp := *b
	cp.Objects = make(map[string]FakeObject, len(b.Objects))
	for k, v := range b.Objects {
		cp.Objects[k] = v
	}
	return cp, true
}

// BucketNames returns the names of all buckets in sorted order.
func (f *FakeS3) BucketNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.buckets))
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListBuckets implements s3api.S3API.
func (f *FakeS3) ListBuckets(
	_ context.Context,
	_ *s3.ListBucketsInput,
	_ ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	out := &s3.ListBucketsOutput{}
	for _, name := range f.BucketNames() {
		f.mu.Lock()
		created := f.buckets[name].CreatedAt
		f.mu.Unlock()
		out.Buckets = append(out.Buckets, types.Bucket{
			Name:         aws.String(name),
			CreationDate: aws.Time(created),
		})
	}
	return out, nil
}

// HeadBucket implements s3api.S3API.
func (f *FakeS3) HeadBucket(
	_ context.Context,
	params *s3.HeadBucketInput,
	_ ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	if _, err := f.bucket(aws.ToString(params.Bucket)); err != nil {
		return nil, &types.NotFound{Message: aws.String("Not Found")}
	}
	return &s3.HeadBucketOutput{}, nil
}

// CreateBucket implements s3api.S3API.
func (f *FakeS3) CreateBucket(
	_ context.Context,
	params *s3.CreateBucketInput,
	_ ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Bucket)
	if _, ok := f.buckets[name]; ok {
		if f.LegacyRegion {
			return &s3.CreateBucketOutput{Location: aws.String("/" + name)}, nil
		}
		return nil, &types.BucketAlreadyOwnedByYou{
			Message: aws.String("Your previous request to create the named bucket succeeded and you already own it."),
		}
	}
	f.buckets[name] = &FakeBucket{Objects: make(map[string]FakeObject), CreatedAt: time.Now()}
	return &s3.CreateBucketOutput{Location: aws.String("/" + name)}, nil
}

// DeleteBucket implements s3api.S3API.
func (f *FakeS3) DeleteBucket(
	_ context.Context,
	params *s3.DeleteBucketInput,
	_ ...func(*s3.Options),
) (*s3.DeleteBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := aws.ToString(params.Bucket)
	b, ok := f.buckets[name]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist")}
	}
	if len(b.Objects) > 0 {
		return nil, &smithy.GenericAPIError{
			Code:    "BucketNotEmpty",
			Message: "The bucket you tried to delete is not empty",
		}
	}
	delete(f.buckets, name)
	return &s3.DeleteBucketOutput{}, nil
}

// ListObjectsV2 implements s3api.S3API. Results are never truncated.
func (f *FakeS3) ListObjectsV2(
	_ context.Context,
	params *s3.ListObjectsV2Input,
	_ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := aws.ToString(params.Prefix)
	keys := make([]string, 0, len(b.Objects))
	for key := range b.Objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false), KeyCount: aws.Int32(int32(len(keys)))}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(b.Objects[key].Body))),
		})
	}
	return out, nil
}

// DeleteObjects implements s3api.S3API.
func (f *FakeS3) DeleteObjects(
	_ context.Context,
	params *s3.DeleteObjectsInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectsOutput, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := &s3.DeleteObjectsOutput{}
	for _, id := range params.Delete.Objects {
		delete(b.Objects, aws.ToString(id.Key))
		out.Deleted = append(out.Deleted, types.DeletedObject{Key: id.Key})
	}
	return out, nil
}

// PutObject implements s3api.S3API.
func (f *FakeS3) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	var body []byte
	if params.Body != nil {
		if body, err = io.ReadAll(params.Body); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b.Objects[aws.ToString(params.Key)] = FakeObject{Body: body, ContentType: aws.ToString(params.ContentType)}
	return &s3.PutObjectOutput{ETag: aws.String(`"fake-etag"`)}, nil
}

// PutBucketWebsite implements s3api.S3API.
func (f *FakeS3) PutBucketWebsite(
	_ context.Context,
	params *s3.PutBucketWebsiteInput,
	_ ...func(*s3.Options),
) (*s3.PutBucketWebsiteOutput, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	b.Website = params.WebsiteConfiguration
	f.mu.Unlock()
	return &s3.PutBucketWebsiteOutput{}, nil
}

// PutPublicAccessBlock implements s3api.S3API.
func (f *FakeS3) PutPublicAccessBlock(
	_ context.Context,
	params *s3.PutPublicAccessBlockInput,
	_ ...func(*s3.Options),
) (*s3.PutPublicAccessBlockOutput, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	b.PublicAccess = params.PublicAccessBlockConfiguration
	f.mu.Unlock()
	return &s3.PutPublicAccessBlockOutput{}, nil
}

// PutBucketPolicy implements s3api.S3API.
func (f *FakeS3) PutBucketPolicy(
	_ context.Context,
	params *s3.PutBucketPolicyInput,
	_ ...func(*s3.Options),
) (*s3.PutBucketPolicyOutput, error) {
	b, err := f.bucket(aws.ToString(params.Bucket))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	b.Policy = aws.ToString(params.Policy)
	f.mu.Unlock()
	return &s3.PutBucketPolicyOutput{}, nil
}

func (f *FakeS3) bucket(name string) (*FakeBucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.buckets[name]
	if !ok {
		return nil, &types.NoSuchBucket{Message: aws.String("The specified bucket does not exist")}
	}
	return b, nil
}
