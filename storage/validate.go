package storage

import (
	"net/netip"
	"strings"
	"unicode"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

const (
	minBucketNameLen = 3
	maxBucketNameLen = 63
	maxObjectKeyLen  = 1024
)

var (
	reservedBucketPrefixes = []string{"xn--", "sthree-", "amzn-s3-demo-"}
	reservedBucketSuffixes = []string{"-s3alias", "--ol-s3", ".mrap", "--x-s3", "--table-s3"}
)

// ValidateBucketName checks a bucket name against the S3 general purpose
// bucket naming rules. It returns an error wrapping ErrInvalidBucketName.
func ValidateBucketName(bucket string) error {
	invalid := func(msg string) error {
		return storageerrors.NewBucketError("validateBucketName", bucket, storageerrors.ErrInvalidBucketName).
			WithMessage(msg)
	}

	if len(bucket) < minBucketNameLen || len(bucket) > maxBucketNameLen {
		return invalid("bucket name must be between 3 and 63 characters long")
	}

	for _, r := range bucket {
		if !isBucketChar(r) {
			return invalid("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}

	if !isLowerAlnum(rune(bucket[0])) || !isLowerAlnum(rune(bucket[len(bucket)-1])) {
		return invalid("bucket name must begin and end with a letter or number")
	}

	if strings.Contains(bucket, "..") {
		return invalid("bucket name cannot contain two adjacent periods")
	}

	if _, err := netip.ParseAddr(bucket); err == nil {
		return invalid("bucket name cannot be formatted as an IP address")
	}

	for _, prefix := range reservedBucketPrefixes {
		if strings.HasPrefix(bucket, prefix) {
			return invalid("bucket name cannot start with reserved prefix " + prefix)
		}
	}
	for _, suffix := range reservedBucketSuffixes {
		if strings.HasSuffix(bucket, suffix) {
			return invalid("bucket name cannot end with reserved suffix " + suffix)
		}
	}

	return nil
}

// ValidateObjectKey checks that an object key is non-empty, at most 1024
// bytes, free of control characters, and does not escape its prefix.
func ValidateObjectKey(key string) error {
	invalid := func(msg string) error {
		return storageerrors.NewError("validateObjectKey", storageerrors.ErrInvalidObjectKey).
			WithKey(key).
			WithMessage(msg)
	}

	if key == "" {
		return invalid("object key cannot be empty")
	}

	if len(key) > maxObjectKeyLen {
		return invalid("object key cannot exceed 1024 bytes")
	}

	if strings.IndexFunc(key, unicode.IsControl) >= 0 {
		return invalid("object key cannot contain control characters")
	}

	if strings.HasPrefix(key, "/") {
		return invalid("object key cannot be an absolute path")
	}

	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return invalid("object key cannot contain path traversal sequences")
		}
	}

	return nil
}

func isBucketChar(r rune) bool {
	return isLowerAlnum(r) || r == '.' || r == '-'
}

func isLowerAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')
}
