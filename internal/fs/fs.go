// Package fs provides the filesystem abstraction used by the upload and
// content-detection code. It is backed by go-billy so tests can run against
// an in-memory tree instead of the host disk.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// File is an open, readable file handle.
type File interface {
	io.ReadSeekCloser
	Name() string
}

// Filesystem is the subset of filesystem operations the module needs.
type Filesystem interface {
	// Open opens the named file for reading.
	Open(name string) (File, error)

	// Stat returns file info for the named path.
	Stat(name string) (os.FileInfo, error)

	// Walk walks the tree rooted at root in lexical order.
	Walk(root string, walkFn filepath.WalkFunc) error

	// WriteFile writes data to the named file, creating parent directories.
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// FS implements Filesystem using go-billy.
type FS struct {
	fs billy.Filesystem
}

// Open implements Filesystem.Open.
//
//nolint:ireturn // returns the File interface so callers can swap implementations.
func (b *FS) Open(name string) (File, error) {
	f, err := b.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", name, err)
	}
	return f, nil
}

// Stat implements Filesystem.Stat.
func (b *FS) Stat(name string) (os.FileInfo, error) {
	info, err := b.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", name, err)
	}
	return info, nil
}

// Walk implements Filesystem.Walk. A root that is a symlink to a directory
// is followed; links below the root are reported, not followed.
func (b *FS) Walk(root string, walkFn filepath.WalkFunc) error {
	if info, ok := b.linkedDir(root); ok {
		return b.walkLinkedRoot(root, info, walkFn)
	}
	if err := util.Walk(b.fs, root, walkFn); err != nil {
		return fmt.Errorf("billy: walk %q: %w", root, err)
	}
	return nil
}

// linkedDir returns the target info when path is a symlink to a directory.
func (b *FS) linkedDir(path string) (os.FileInfo, bool) {
	link, err := b.fs.Lstat(path)
	if err != nil || link.Mode()&os.ModeSymlink == 0 {
		return nil, false
	}
	target, err := b.fs.Stat(path)
	if err != nil || !target.IsDir() {
		return nil, false
	}
	return target, true
}

func (b *FS) walkLinkedRoot(root string, info os.FileInfo, walkFn filepath.WalkFunc) error {
	if err := walkFn(root, info, nil); err != nil {
		if errors.Is(err, filepath.SkipDir) {
			return nil
		}
		return fmt.Errorf("billy: walk %q: %w", root, err)
	}

	entries, err := b.fs.ReadDir(root)
	if err != nil {
		if err := walkFn(root, info, err); err != nil && !errors.Is(err, filepath.SkipDir) {
			return fmt.Errorf("billy: walk %q: %w", root, err)
		}
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if err := util.Walk(b.fs, filepath.Join(root, entry.Name()), walkFn); err != nil {
			return fmt.Errorf("billy: walk %q: %w", root, err)
		}
	}
	return nil
}

// WriteFile implements Filesystem.WriteFile.
func (b *FS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("billy: mkdirall %q: %w", dir, err)
		}
	}
	if err := util.WriteFile(b.fs, name, data, perm); err != nil {
		return fmt.Errorf("billy: writefile %q: %w", name, err)
	}
	return nil
}

// IsNotExist reports whether err indicates a missing file, looking through
// the wrapping added by FS.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// NewFS wraps an existing go-billy filesystem.
func NewFS(fsys billy.Filesystem) *FS {
	return &FS{fs: fsys}
}

// NewInMemoryFS creates an empty in-memory filesystem.
func NewInMemoryFS() *FS {
	return &FS{fs: memfs.New()}
}

// baseOSFS is a billy.Filesystem that passes paths straight to the host, so
// relative paths resolve against the working directory.
type baseOSFS struct {
	osfs.ChrootOS
}

//nolint:ireturn // signature is dictated by billy.Chroot.
func (b *baseOSFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (b *baseOSFS) Root() string {
	return "/"
}

// NewOSFS returns a filesystem over the host disk.
func NewOSFS() *FS {
	return &FS{fs: &baseOSFS{}}
}
