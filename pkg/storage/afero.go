package storage

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/spf13/afero"
)

// MemSchemeName names the afero backed scheme.
const MemSchemeName = "mem"

// aferoScheme implements Scheme over an afero filesystem
type aferoScheme struct {
	fs afero.Fs
}

// NewMemScheme creates an afero backed scheme. A nil fs gets a fresh
// in-memory filesystem. Afero has no hard links, so Hardlink writes an
// independent copy of the content; Symlink works only when fs implements
// afero.Linker.
func NewMemScheme(fs afero.Fs) Scheme {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return &aferoScheme{fs: fs}
}

func (a *aferoScheme) Name() string { return MemSchemeName }

func (a *aferoScheme) Resolve(location string) (string, error) {
	return path.Clean("/" + location), nil
}

func (a *aferoScheme) Exists(_ context.Context, p string) (bool, error) {
	ok, err := afero.Exists(a.fs, p)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
	}
	return ok, nil
}

func (a *aferoScheme) IsDir(_ context.Context, p string) (bool, error) {
	info, err := a.fs.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
	}
	return info.IsDir(), nil
}

func (a *aferoScheme) IsFile(_ context.Context, p string) (bool, error) {
	info, err := a.fs.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrStorage, "failed to stat %s", p)
	}
	return info.Mode().IsRegular(), nil
}

func (a *aferoScheme) ReadDir(_ context.Context, p string) ([]DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to list %s", p)
	}
	entries := make([]DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = DirEntry{Name: info.Name(), Kind: kindOf(info.Mode())}
	}
	return entries, nil
}

func (a *aferoScheme) MkdirAll(_ context.Context, p string) error {
	if err := a.fs.MkdirAll(p, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to create directory %s", p)
	}
	return nil
}

func (a *aferoScheme) Open(_ context.Context, p string) (io.ReadCloser, error) {
	f, err := a.fs.Open(p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to open %s", p)
	}
	return f, nil
}

func (a *aferoScheme) Create(_ context.Context, p string) (io.WriteCloser, error) {
	f, err := a.fs.Create(p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorage, "failed to create %s", p)
	}
	return f, nil
}

func (a *aferoScheme) Symlink(_ context.Context, source, target string) error {
	linker, ok := a.fs.(afero.Linker)
	if !ok {
		return errors.Newf(errors.ErrNotSupported, "symbolic links are not supported by %s", a.fs.Name())
	}
	if err := linker.SymlinkIfPossible(source, target); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to symlink %s to %s", target, source)
	}
	return nil
}

func (a *aferoScheme) Hardlink(_ context.Context, source, target string) error {
	data, err := afero.ReadFile(a.fs, source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to read %s", source)
	}
	if err := afero.WriteFile(a.fs, target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to write %s", target)
	}
	return nil
}

func (a *aferoScheme) Rename(_ context.Context, oldpath, newpath string) error {
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to rename %s", oldpath)
	}
	return nil
}

func (a *aferoScheme) Remove(_ context.Context, p string) error {
	if err := a.fs.Remove(p); err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to remove %s", p)
	}
	return nil
}

// RegisterMemScheme adds the mem scheme over fs to r together with its
// syncers: links within mem, copies between mem and file.
func RegisterMemScheme(r *Registry, fs afero.Fs) error {
	if err := r.RegisterScheme(NewMemScheme(fs)); err != nil {
		return err
	}
	pairs := []struct {
		src, dest string
		syncer    Syncer
	}{
		{MemSchemeName, MemSchemeName, LinkSyncer{}},
		{MemSchemeName, FileSchemeName, CopySyncer{}},
		{FileSchemeName, MemSchemeName, CopySyncer{}},
	}
	for _, p := range pairs {
		if err := r.RegisterSyncer(p.src, p.dest, p.syncer); err != nil {
			return err
		}
	}
	return nil
}
