package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
)

func TestDetectContentType(t *testing.T) {
	memfs := fs.NewInMemoryFS()
	files := map[string][]byte{
		"page.html":  []byte("<p>x</p>"),
		"logo.PNG":   []byte("not really a png"),
		"README":     []byte("plain words only\n"),
		"photo":      {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'},
		"empty":      {},
		"data.xyzzy": {0x00, 0x9f, 0x00, 0x01},
	}
	for name, data := range files {
		require.NoError(t, memfs.WriteFile(name, data, 0o644))
	}

	tests := []struct {
		name       string
		path       string
		wantPrefix string
	}{
		{name: "extension wins", path: "page.html", wantPrefix: "text/html"},
		{name: "extension is case-insensitive", path: "logo.PNG", wantPrefix: "image/png"},
		{name: "sniffed text", path: "README", wantPrefix: "text/plain"},
		{name: "sniffed image", path: "photo", wantPrefix: "image/png"},
		{name: "empty file", path: "empty", wantPrefix: DefaultContentType},
		{name: "unknown extension and binary", path: "data.xyzzy", wantPrefix: DefaultContentType},
		{name: "missing file", path: "missing", wantPrefix: DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectContentType(memfs, tt.path)
			assert.True(t, strings.HasPrefix(got, tt.wantPrefix), "got %q, want prefix %q", got, tt.wantPrefix)
		})
	}
}

func TestDetectContentType_NilFilesystem(t *testing.T) {
	assert.Equal(t, "image/png", DetectContentType(nil, "a/b/c.png"))
	assert.Equal(t, DefaultContentType, DetectContentType(nil, "a/b/c"))
}
