package storage

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

func TestConvertAWSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "already owned type", err: &types.BucketAlreadyOwnedByYou{}, want: storageerrors.ErrBucketAlreadyOwned},
		{name: "already exists type", err: &types.BucketAlreadyExists{}, want: storageerrors.ErrBucketAlreadyExists},
		{name: "no such bucket type", err: &types.NoSuchBucket{}, want: storageerrors.ErrBucketNotFound},
		{name: "head not found type", err: &types.NotFound{}, want: storageerrors.ErrBucketNotFound},
		{name: "already owned code", err: &smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}, want: storageerrors.ErrBucketAlreadyOwned},
		{name: "not empty code", err: &smithy.GenericAPIError{Code: "BucketNotEmpty"}, want: storageerrors.ErrBucketNotEmpty},
		{name: "access denied code", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: storageerrors.ErrAccessDenied},
		{name: "forbidden code", err: &smithy.GenericAPIError{Code: "Forbidden"}, want: storageerrors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertAWSError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestConvertAWSError_Passthrough(t *testing.T) {
	assert.NoError(t, convertAWSError(nil))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, convertAWSError(plain))

	unknown := &smithy.GenericAPIError{Code: "SlowDown"}
	assert.Equal(t, error(unknown), convertAWSError(unknown))
}
