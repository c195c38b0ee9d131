package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{name: "simple", bucket: "devops-exam-team1"},
		{name: "dots", bucket: "my.site.example"},
		{name: "starts with digit", bucket: "1st-bucket"},
		{name: "minimum length", bucket: "abc"},
		{name: "maximum length", bucket: strings.Repeat("a", 63)},
		{name: "too short", bucket: "ab", wantErr: true},
		{name: "too long", bucket: strings.Repeat("a", 64), wantErr: true},
		{name: "uppercase", bucket: "Devops-Exam", wantErr: true},
		{name: "underscore", bucket: "devops_exam", wantErr: true},
		{name: "space", bucket: "devops exam", wantErr: true},
		{name: "leading hyphen", bucket: "-bucket", wantErr: true},
		{name: "trailing dot", bucket: "bucket.", wantErr: true},
		{name: "adjacent dots", bucket: "my..bucket", wantErr: true},
		{name: "ip address", bucket: "192.168.5.4", wantErr: true},
		{name: "reserved prefix", bucket: "xn--bucket", wantErr: true},
		{name: "reserved suffix", bucket: "bucket-s3alias", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr {
				assert.ErrorIs(t, err, storageerrors.ErrInvalidBucketName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "flat", key: "index.html"},
		{name: "nested", key: "assets/css/site.css"},
		{name: "dots inside a name", key: "release..notes.txt"},
		{name: "unicode", key: "images/café.jpg"},
		{name: "empty", key: "", wantErr: true},
		{name: "too long", key: strings.Repeat("k", 1025), wantErr: true},
		{name: "control character", key: "bad\x00key", wantErr: true},
		{name: "absolute", key: "/etc/passwd", wantErr: true},
		{name: "traversal", key: "assets/../../secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, storageerrors.ErrInvalidObjectKey)
				return
			}
			assert.NoError(t, err)
		})
	}
}
