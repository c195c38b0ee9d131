// Package awsconfig builds the aws.Config shared by every command: region
// resolution, named profiles, assumed-role credentials, custom endpoints for
// LocalStack, and retry settings.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"
)

// DefaultRegion is used when no region is configured anywhere.
const DefaultRegion = "us-east-1"

// Options controls how the AWS configuration is loaded. Zero values defer to
// the SDK's default chain.
type Options struct {
	// Region overrides AWS_REGION and the profile region.
	Region string

	// Profile selects a named profile from the shared config files.
	Profile string

	// Endpoint overrides the service endpoint for every client, e.g. a LocalStack URL.
	Endpoint string

	// AssumeRoleARN makes every call under an assumed role.
	AssumeRoleARN string

	// MaxRetries caps attempts per request. Zero keeps the SDK default.
	MaxRetries int

	// Logger receives SDK log output. Nil disables it.
	Logger *zap.Logger

	// Debug turns on SDK request retry logging.
	Debug bool
}

// Load builds an aws.Config from opts and the SDK's default chain.
func Load(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	switch {
	case opts.Profile != "":
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	case opts.Endpoint != "":
		// Local emulators accept any credentials.
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("test", "test", ""),
		))
	}

	if opts.MaxRetries > 0 {
		loadOpts = append(loadOpts, config.WithRetryer(newRetryer(opts.MaxRetries)))
	}

	if opts.Logger != nil {
		loadOpts = append(loadOpts, config.WithLogger(newSDKLogger(opts.Logger)))
		if opts.Debug {
			loadOpts = append(loadOpts, config.WithClientLogMode(aws.LogRetries))
		}
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	if opts.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(opts.Endpoint)
	}

	if opts.AssumeRoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), opts.AssumeRoleARN)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return cfg, nil
}
