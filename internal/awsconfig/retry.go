package awsconfig

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
)

// throttleCodes are API error codes that indicate a transient rate limit.
// The autoscaling API reports throttling as "Throttling" and S3 as "SlowDown".
var throttleCodes = []string{
	"Throttling",
	"ThrottlingException",
	"RequestLimitExceeded",
	"TooManyRequestsException",
	"SlowDown",
}

// newRetryer returns a standard SDK retryer capped at maxAttempts that also
// treats throttleCodes as retryable.
func newRetryer(maxAttempts int) func() aws.Retryer {
	return func() aws.Retryer {
		return retry.AddWithErrorCodes(
			retry.AddWithMaxAttempts(retry.NewStandard(), maxAttempts),
			throttleCodes...,
		)
	}
}
