package website

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storageerrors "github.com/input-output-hk/catalyst-forge-libs/infra/storage/errors"
)

func TestBucketName(t *testing.T) {
	tests := []struct {
		suffix  string
		want    string
		wantErr bool
	}{
		{suffix: "team1", want: "devops-exam-team1"},
		{suffix: "  MyTeam  ", want: "devops-exam-myteam"},
		{suffix: "Blue.Green", want: "devops-exam-blue.green"},
		{suffix: "\tprod-2\n", want: "devops-exam-prod-2"},
		{suffix: "", wantErr: true},
		{suffix: "   ", wantErr: true},
		{suffix: "under_score", wantErr: true},
		{suffix: "trailing-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			got, err := BucketName(tt.suffix)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, storageerrors.ErrInvalidBucketName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKey(t *testing.T) {
	root := filepath.Join("build", "site")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "top level", path: filepath.Join(root, "index.html"), want: "index.html"},
		{name: "nested", path: filepath.Join(root, "assets", "css", "app.css"), want: "assets/css/app.css"},
		{name: "backslash", path: filepath.Join(root, `docs\guide.html`), want: "docs/guide.html"},
		{name: "unclean path", path: filepath.Join(root, "a", "..", "b.txt"), want: "b.txt"},
		{name: "root itself", path: root, wantErr: true},
		{name: "outside root", path: filepath.Join("build", "other.txt"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(root, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPublicReadPolicy(t *testing.T) {
	policy, err := PublicReadPolicy("devops-exam-team1")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Sid": "PublicReadGetObject",
			"Effect": "Allow",
			"Principal": "*",
			"Action": "s3:GetObject",
			"Resource": "arn:aws:s3:::devops-exam-team1/*"
		}]
	}`, policy)
	assert.True(t, json.Valid([]byte(policy)))

	_, err = PublicReadPolicy("")
	assert.Error(t, err)
}
