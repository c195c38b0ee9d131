package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryFS_WriteOpenStat(t *testing.T) {
	fsys := NewInMemoryFS()

	require.NoError(t, fsys.WriteFile("site/css/app.css", []byte("body{}"), 0o644))

	info, err := fsys.Stat("site/css/app.css")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, int64(6), info.Size())

	f, err := fsys.Open("site/css/app.css")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
}

func TestInMemoryFS_StatMissing(t *testing.T) {
	fsys := NewInMemoryFS()

	_, err := fsys.Stat("nope.txt")
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestInMemoryFS_WalkLexicalOrder(t *testing.T) {
	fsys := NewInMemoryFS()
	for _, name := range []string{"site/b.txt", "site/a/z.txt", "site/a.txt"} {
		require.NoError(t, fsys.WriteFile(name, []byte(name), 0o644))
	}

	var files []string
	err := fsys.Walk("site", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"site/a/z.txt", "site/a.txt", "site/b.txt"}, files)
}

func TestOSFS_RelativeAndAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFS()

	path := filepath.Join(dir, "nested", "index.html")
	require.NoError(t, fsys.WriteFile(path, []byte("<html></html>"), 0o644))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(13), info.Size())

	var seen int
	require.NoError(t, fsys.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			seen++
		}
		return err
	}))
	assert.Equal(t, 1, seen)
}

func TestOSFS_WalkFollowsSymlinkedRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	fsys := NewOSFS()
	require.NoError(t, fsys.WriteFile(filepath.Join(target, "index.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, fsys.WriteFile(filepath.Join(target, "css", "site.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(base, "real", "css"), filepath.Join(target, "styles")))

	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(target, link))

	var files, links []string
	require.NoError(t, fsys.Walk(link, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(link, path)
		require.NoError(t, relErr)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			links = append(links, filepath.ToSlash(rel))
		case !info.IsDir():
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	}))

	assert.Equal(t, []string{"css/site.css", "index.html"}, files)
	assert.Equal(t, []string{"styles"}, links, "links below the root are not followed")
}
