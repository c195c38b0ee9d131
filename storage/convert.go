package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// convertAWSError maps AWS SDK errors onto package sentinels. The original
// error stays in the chain so callers can still inspect the API response.
func convertAWSError(err error) error {
	if err == nil {
		return nil
	}

	if sentinel := sentinelFor(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}

	return err
}

func sentinelFor(err error) error {
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return storageerrors.ErrBucketAlreadyOwned
	}

	var exists *types.BucketAlreadyExists
	if errors.As(err, &exists) {
		return storageerrors.ErrBucketAlreadyExists
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return storageerrors.ErrBucketNotFound
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return storageerrors.ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "BucketAlreadyOwnedByYou":
			return storageerrors.ErrBucketAlreadyOwned
		case "BucketAlreadyExists":
			return storageerrors.ErrBucketAlreadyExists
		case "NoSuchBucket", "NotFound":
			return storageerrors.ErrBucketNotFound
		case "BucketNotEmpty":
			return storageerrors.ErrBucketNotEmpty
		case "AccessDenied", "Forbidden", "AllAccessDisabled":
			return storageerrors.ErrAccessDenied
		case "InvalidBucketName":
			return storageerrors.ErrInvalidBucketName
		}
	}

	return nil
}
