package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

// PutWebsite enables static website hosting on the bucket.
func (c *Client) PutWebsite(ctx context.Context, bucket string, cfg WebsiteConfig) error {
	if cfg.IndexDocument == "" {
		return storageerrors.NewBucketError("putWebsite", bucket, storageerrors.ErrInvalidInput).
			WithMessage("index document cannot be empty")
	}

	website := &types.WebsiteConfiguration{
		IndexDocument: &types.IndexDocument{Suffix: aws.String(cfg.IndexDocument)},
	}
	if cfg.ErrorDocument != "" {
		website.ErrorDocument = &types.ErrorDocument{Key: aws.String(cfg.ErrorDocument)}
	}

	_, err := c.api.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket:               aws.String(bucket),
		WebsiteConfiguration: website,
	})
	if err != nil {
		return storageerrors.NewBucketError("putWebsite", bucket, convertAWSError(err))
	}

	c.logger.Debug("configured website hosting",
		zap.String("bucket", bucket),
		zap.String("index", cfg.IndexDocument),
		zap.String("error", cfg.ErrorDocument),
	)
	return nil
}

// PutPublicAccessBlock sets the bucket's public access block configuration.
func (c *Client) PutPublicAccessBlock(ctx context.Context, bucket string, block PublicAccessBlock) error {
	_, err := c.api.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(block.BlockPublicAcls),
			IgnorePublicAcls:      aws.Bool(block.IgnorePublicAcls),
			BlockPublicPolicy:     aws.Bool(block.BlockPublicPolicy),
			RestrictPublicBuckets: aws.Bool(block.RestrictPublicBuckets),
		},
	})
	if err != nil {
		return storageerrors.NewBucketError("putPublicAccessBlock", bucket, convertAWSError(err))
	}

	return nil
}

// PutBucketPolicy attaches a JSON policy document to the bucket.
func (c *Client) PutBucketPolicy(ctx context.Context, bucket, policy string) error {
	if policy == "" {
		return storageerrors.NewBucketError("putBucketPolicy", bucket, storageerrors.ErrInvalidInput).
			WithMessage("policy cannot be empty")
	}

	_, err := c.api.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(policy),
	})
	if err != nil {
		return storageerrors.NewBucketError("putBucketPolicy", bucket, convertAWSError(err))
	}

	return nil
}

// WebsiteURL returns the S3 website endpoint of a bucket.
func WebsiteURL(bucket, region string) string {
	if region == "" {
		region = DefaultRegion
	}
	return fmt.Sprintf("http://%s.s3-website-%s.amazonaws.com", bucket, region)
}
