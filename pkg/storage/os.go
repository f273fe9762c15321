package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/softsync/pkg/errors"
)

// FileSchemeName is the scheme used when a root spec carries none.
const FileSchemeName = "file"

// osScheme implements Scheme on the local filesystem
type osScheme struct{}

// NewFileScheme creates the local filesystem scheme
func NewFileScheme() Scheme {
	return &osScheme{}
}

func (o *osScheme) Name() string { return FileSchemeName }

func (o *osScheme) Resolve(location string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(location))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidRoot, "failed to resolve %s", location)
	}
	return filepath.ToSlash(evalExisting(abs)), nil
}

// evalExisting resolves symlinks in the longest existing prefix of abs
// and appends the remaining components unchanged.
func evalExisting(abs string) string {
	rest := ""
	for p := abs; ; {
		if real, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(real, rest)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return abs
		}
		rest = filepath.Join(filepath.Base(p), rest)
		p = parent
	}
}

func (o *osScheme) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Lstat(native(p))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
}

func (o *osScheme) IsDir(_ context.Context, p string) (bool, error) {
	info, err := os.Stat(native(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
	}
	return info.IsDir(), nil
}

func (o *osScheme) IsFile(_ context.Context, p string) (bool, error) {
	info, err := os.Stat(native(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
	}
	return info.Mode().IsRegular(), nil
}

func (o *osScheme) ReadDir(_ context.Context, p string) ([]DirEntry, error) {
	entries, err := os.ReadDir(native(p))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to list %s", p)
	}

	result := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			// Materialized symlinks count as whatever they point at
			info, err := os.Stat(filepath.Join(native(p), entry.Name()))
			if err != nil {
				result = append(result, DirEntry{Name: entry.Name(), Kind: KindOther})
				continue
			}
			mode = info.Mode()
		}
		result = append(result, DirEntry{Name: entry.Name(), Kind: kindOf(mode)})
	}
	return result, nil
}

func (o *osScheme) MkdirAll(_ context.Context, p string) error {
	if err := os.MkdirAll(native(p), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to create directory %s", p)
	}
	return nil
}

func (o *osScheme) Open(_ context.Context, p string) (io.ReadCloser, error) {
	f, err := os.Open(native(p))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to open %s", p)
	}
	return f, nil
}

func (o *osScheme) Create(_ context.Context, p string) (io.WriteCloser, error) {
	f, err := os.Create(native(p))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to create %s", p)
	}
	return f, nil
}

func (o *osScheme) Symlink(_ context.Context, source, target string) error {
	if err := os.Symlink(native(source), native(target)); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to symlink %s to %s", target, source)
	}
	return nil
}

func (o *osScheme) Hardlink(_ context.Context, source, target string) error {
	if err := os.Link(native(source), native(target)); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to hardlink %s to %s", target, source)
	}
	return nil
}

func (o *osScheme) Rename(_ context.Context, oldpath, newpath string) error {
	if err := os.Rename(native(oldpath), native(newpath)); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to rename %s", oldpath)
	}
	return nil
}

func (o *osScheme) Remove(_ context.Context, p string) error {
	if err := os.Remove(native(p)); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to remove %s", p)
	}
	return nil
}

func native(p string) string {
	return filepath.FromSlash(p)
}

func kindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	default:
		return KindOther
	}
}
