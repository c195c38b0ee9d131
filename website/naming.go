package website

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
)

// BucketPrefix is prepended to every site bucket name.
const BucketPrefix = "devops-exam-"

// BucketName derives the site bucket from a user-supplied suffix. The suffix
// is trimmed and lowercased; the result must be a valid S3 bucket name.
func BucketName(suffix string) (string, error) {
	name := BucketPrefix + strings.ToLower(strings.TrimSpace(suffix))
	if err := storage.ValidateBucketName(name); err != nil {
		return "", fmt.Errorf("invalid bucket suffix %q: %w", suffix, err)
	}
	return name, nil
}

// Key returns the object key for path: its location relative to root with
// every separator turned into "/".
func Key(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to make %q relative to %q: %w", path, root, err)
	}

	key := strings.ReplaceAll(filepath.ToSlash(rel), `\`, "/")
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return "", fmt.Errorf("path %q is not inside %q", path, root)
	}
	return key, nil
}
