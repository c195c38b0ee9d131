package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage/storagetest"
)

func TestClient_ListBuckets_Paginates(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock := &storagetest.MockS3Client{}
	var calls int
	mock.ListBucketsFunc = func(_ context.Context, params *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
		calls++
		if params.ContinuationToken == nil {
			return &s3.ListBucketsOutput{
				Buckets: []types.Bucket{
					{Name: aws.String("alpha"), BucketRegion: aws.String("eu-west-1"), CreationDate: aws.Time(created)},
				},
				ContinuationToken: aws.String("next"),
			}, nil
		}
		assert.Equal(t, "next", aws.ToString(params.ContinuationToken))
		return &s3.ListBucketsOutput{
			Buckets: []types.Bucket{{Name: aws.String("beta")}},
		}, nil
	}

	client := NewWithClient(mock)
	buckets, err := client.ListBuckets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	require.Len(t, buckets, 2)
	assert.Equal(t, Bucket{Name: "alpha", Region: "eu-west-1", CreatedAt: created}, buckets[0])
	assert.Equal(t, "beta", buckets[1].Name)
}

func TestClient_ListBuckets_Error(t *testing.T) {
	mock := &storagetest.MockS3Client{
		ListBucketsFunc: func(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
			return nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
		},
	}

	_, err := NewWithClient(mock).ListBuckets(context.Background())
	require.Error(t, err)
	assert.True(t, storageerrors.IsAccessDenied(err))

	var apiErr smithy.APIError
	require.True(t, errors.As(err, &apiErr), "original API error stays in the chain")
	assert.Equal(t, "AccessDenied", apiErr.ErrorCode())
}

func TestClient_BucketExists(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found type", err: &types.NotFound{}, want: false},
		{name: "no such bucket code", err: &smithy.GenericAPIError{Code: "NoSuchBucket"}, want: false},
		{name: "forbidden", err: &smithy.GenericAPIError{Code: "Forbidden"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storagetest.MockS3Client{
				HeadBucketFunc: func(_ context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
					assert.Equal(t, "my-bucket", aws.ToString(params.Bucket))
					if tt.err != nil {
						return nil, tt.err
					}
					return &s3.HeadBucketOutput{}, nil
				},
			}

			got, err := NewWithClient(mock).BucketExists(context.Background(), "my-bucket")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, storageerrors.IsAccessDenied(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_CreateBucket(t *testing.T) {
	tests := []struct {
		name           string
		region         string
		bucket         string
		apiErr         error
		wantConstraint string
		wantSentinel   error
	}{
		{
			name:   "us-east-1 sends no location constraint",
			region: "us-east-1",
			bucket: "devops-exam-site",
		},
		{
			name:           "other regions send a location constraint",
			region:         "eu-central-1",
			bucket:         "devops-exam-site",
			wantConstraint: "eu-central-1",
		},
		{
			name:         "already owned",
			region:       "us-east-1",
			bucket:       "devops-exam-site",
			apiErr:       &types.BucketAlreadyOwnedByYou{Message: aws.String("owned")},
			wantSentinel: storageerrors.ErrBucketAlreadyOwned,
		},
		{
			name:         "owned by another account",
			region:       "us-east-1",
			bucket:       "devops-exam-site",
			apiErr:       &types.BucketAlreadyExists{},
			wantSentinel: storageerrors.ErrBucketAlreadyExists,
		},
		{
			name:         "invalid name is rejected before the call",
			region:       "us-east-1",
			bucket:       "Bad_Name",
			wantSentinel: storageerrors.ErrInvalidBucketName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storagetest.MockS3Client{
				CreateBucketFunc: func(_ context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
					assert.Equal(t, tt.bucket, aws.ToString(params.Bucket))
					if tt.wantConstraint == "" {
						assert.Nil(t, params.CreateBucketConfiguration)
					} else {
						require.NotNil(t, params.CreateBucketConfiguration)
						assert.Equal(t, types.BucketLocationConstraint(tt.wantConstraint),
							params.CreateBucketConfiguration.LocationConstraint)
					}
					if tt.apiErr != nil {
						return nil, tt.apiErr
					}
					return &s3.CreateBucketOutput{}, nil
				},
			}

			client := NewWithClient(mock, WithRegion(tt.region))
			err := client.CreateBucket(context.Background(), tt.bucket)
			if tt.wantSentinel != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantSentinel)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClient_CreateBucket_InvalidNameSkipsAPI(t *testing.T) {
	mock := &storagetest.MockS3Client{}

	err := NewWithClient(mock).CreateBucket(context.Background(), "ab")
	require.Error(t, err)
	assert.Empty(t, mock.Calls())
}

func TestClient_DeleteBucket(t *testing.T) {
	tests := []struct {
		name         string
		bucket       string
		apiErr       error
		wantSentinel error
	}{
		{name: "success", bucket: "old-bucket"},
		{name: "legacy name is allowed", bucket: "Legacy_Bucket"},
		{name: "missing", bucket: "old-bucket", apiErr: &types.NoSuchBucket{}, wantSentinel: storageerrors.ErrBucketNotFound},
		{
			name:         "not empty",
			bucket:       "old-bucket",
			apiErr:       &smithy.GenericAPIError{Code: "BucketNotEmpty"},
			wantSentinel: storageerrors.ErrBucketNotEmpty,
		},
		{name: "empty name", bucket: "", wantSentinel: storageerrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &storagetest.MockS3Client{
				DeleteBucketFunc: func(_ context.Context, params *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
					assert.Equal(t, tt.bucket, aws.ToString(params.Bucket))
					if tt.apiErr != nil {
						return nil, tt.apiErr
					}
					return &s3.DeleteBucketOutput{}, nil
				},
			}

			err := NewWithClient(mock).DeleteBucket(context.Background(), tt.bucket)
			if tt.wantSentinel != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantSentinel)

				var storageErr *storageerrors.Error
				require.ErrorAs(t, err, &storageErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewWithClient_DefaultRegion(t *testing.T) {
	assert.Equal(t, DefaultRegion, NewWithClient(&storagetest.MockS3Client{}).Region())
	assert.Equal(t, "ap-south-1", NewWithClient(&storagetest.MockS3Client{}, WithRegion("ap-south-1")).Region())
}

func TestNew_UsesConfigRegion(t *testing.T) {
	client := New(aws.Config{Region: "eu-west-2"})
	assert.Equal(t, "eu-west-2", client.Region())

	client = New(aws.Config{})
	assert.Equal(t, DefaultRegion, client.Region())
}
