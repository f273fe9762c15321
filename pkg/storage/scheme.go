package storage

import (
	"context"
	"io"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// DirEntry is one item yielded by Scheme.ReadDir.
type DirEntry struct {
	Name string
	Kind Kind
}

// Scheme is the set of operations the engine needs from a backing store.
// Implementations are stateless or hold only shared client state, so one
// value can serve every Root that uses the scheme.
type Scheme interface {
	// Name is the scheme name used in root specs, e.g. "file".
	Name() string

	// Resolve turns the location part of a root spec (everything after
	// "scheme://") into an absolute, normalized path.
	Resolve(location string) (string, error)

	Exists(ctx context.Context, p string) (bool, error)
	IsDir(ctx context.Context, p string) (bool, error)
	IsFile(ctx context.Context, p string) (bool, error)
	ReadDir(ctx context.Context, p string) ([]DirEntry, error)

	// MkdirAll creates p and any missing parents. Existing directories are fine.
	MkdirAll(ctx context.Context, p string) error

	Open(ctx context.Context, p string) (io.ReadCloser, error)
	Create(ctx context.Context, p string) (io.WriteCloser, error)

	// Symlink creates target as a symbolic reference to source.
	Symlink(ctx context.Context, source, target string) error

	// Hardlink creates target as a hard link to source.
	Hardlink(ctx context.Context, source, target string) error

	Rename(ctx context.Context, oldpath, newpath string) error
	Remove(ctx context.Context, p string) error
}

// Location is a path within a particular scheme.
type Location struct {
	Scheme Scheme
	Path   string
}

func (l Location) String() string {
	return l.Scheme.Name() + "://" + l.Path
}
