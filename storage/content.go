package storage

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/fs"
)

// sniffLen is how many leading bytes are read for content sniffing.
const sniffLen = 512

// DetectContentType guesses the Content-Type of a file. The extension wins
// when it is known; otherwise the first bytes are sniffed. Files that cannot
// be classified get DefaultContentType.
func DetectContentType(fsys fs.Filesystem, path string) string {
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	if fsys == nil {
		return DefaultContentType
	}

	info, err := fsys.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return DefaultContentType
	}

	file, err := fsys.Open(path)
	if err != nil {
		return DefaultContentType
	}
	defer file.Close()

	buf := make([]byte, sniffLen)
	n, _ := file.Read(buf)
	if n == 0 {
		return DefaultContentType
	}

	return mimetype.Detect(buf[:n]).String()
}
