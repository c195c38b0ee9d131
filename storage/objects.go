package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// ListObjects returns every object in the bucket whose key starts with prefix.
// An empty prefix lists the whole bucket.
func (c *Client) ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error) {
	if bucket == "" {
		return nil, storageerrors.NewError("listObjects", storageerrors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storageerrors.NewBucketError("listObjects", bucket, convertAWSError(err))
		}

		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
			})
		}
	}

	return objects, nil
}

// DeleteObjects deletes the given keys, splitting them into requests of at
// most 1000 keys. Keys S3 refuses to delete are reported in the result; a
// failed request aborts and returns what was deleted so far.
func (c *Client) DeleteObjects(ctx context.Context, bucket string, keys []string) (*DeleteResult, error) {
	if bucket == "" {
		return nil, storageerrors.NewError("deleteObjects", storageerrors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	result := &DeleteResult{}
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(keys))

		identifiers := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
		}

		output, err := c.api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(false),
			},
		})
		if err != nil {
			return result, storageerrors.NewBucketError("deleteObjects", bucket, convertAWSError(err))
		}

		for _, deleted := range output.Deleted {
			result.Deleted = append(result.Deleted, aws.ToString(deleted.Key))
		}
		for _, e := range output.Errors {
			result.Errors = append(result.Errors, DeleteError{
				Key:     aws.ToString(e.Key),
				Code:    aws.ToString(e.Code),
				Message: aws.ToString(e.Message),
			})
		}
	}

	return result, nil
}

// EmptyBucket deletes every object in the bucket. Per-key failures are
// collected in the result rather than returned as an error.
func (c *Client) EmptyBucket(ctx context.Context, bucket string) (*EmptyResult, error) {
	objects, err := c.ListObjects(ctx, bucket, "")
	if err != nil {
		return nil, storageerrors.NewBucketError("emptyBucket", bucket, err)
	}

	result := &EmptyResult{}
	if len(objects) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}

	deleted, err := c.DeleteObjects(ctx, bucket, keys)
	if deleted != nil {
		result.Deleted = len(deleted.Deleted)
		result.Keys = deleted.Deleted
		result.Errors = deleted.Errors
	}
	if err != nil {
		return result, storageerrors.NewBucketError("emptyBucket", bucket, err)
	}

	for _, e := range result.Errors {
		c.logger.Warn("object not deleted",
			zap.String("bucket", bucket),
			zap.String("key", e.Key),
			zap.String("code", e.Code),
			zap.String("message", e.Message),
		)
	}

	c.logger.Debug("emptied bucket", zap.String("bucket", bucket), zap.Int("deleted", result.Deleted))
	return result, nil
}

// UploadFile uploads a local file to bucket/key with a single PutObject.
// The content type is detected from the file name and contents.
func (c *Client) UploadFile(ctx context.Context, bucket, key, path string) (*UploadResult, error) {
	if bucket == "" {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, storageerrors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}
	if err := ValidateObjectKey(key); err != nil {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, err)
	}
	if path == "" {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, storageerrors.ErrInvalidInput).
			WithMessage("file path cannot be empty")
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, err)
	}
	if info.IsDir() {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, storageerrors.ErrInvalidInput).
			WithMessage("file path points to a directory, not a file")
	}

	contentType := DetectContentType(c.fs, path)

	file, err := c.fs.Open(path)
	if err != nil {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, err)
	}
	defer file.Close()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	}

	output, err := c.api.PutObject(ctx, input)
	if err != nil {
		return nil, storageerrors.NewObjectError("uploadFile", bucket, key, convertAWSError(err))
	}

	c.logger.Debug("uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("contentType", contentType),
		zap.Int64("size", info.Size()),
	)

	return &UploadResult{
		Bucket:      bucket,
		Key:         key,
		ContentType: contentType,
		Size:        info.Size(),
		ETag:        aws.ToString(output.ETag),
	}, nil
}
