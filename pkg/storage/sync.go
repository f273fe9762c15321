package storage

import (
	"context"
	"io"
	"path"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
)

// Syncer materializes a source file at a destination path. The
// destination parent directory exists and the destination path is free
// when either method is called.
type Syncer interface {
	Symlink(ctx context.Context, src, dest Location) error
	Hardlink(ctx context.Context, src, dest Location) error
}

// LinkSyncer serves pairs of roots on the same backend by delegating to
// the backend's own link operations.
type LinkSyncer struct{}

func (LinkSyncer) Symlink(ctx context.Context, src, dest Location) error {
	return dest.Scheme.Symlink(ctx, src.Path, dest.Path)
}

func (LinkSyncer) Hardlink(ctx context.Context, src, dest Location) error {
	return dest.Scheme.Hardlink(ctx, src.Path, dest.Path)
}

// CopySyncer serves pairs of roots on different backends, where no link
// can span the two. Hardlink streams the content through a staging
// directory next to the destination and renames it into place.
type CopySyncer struct{}

func (CopySyncer) Symlink(_ context.Context, src, dest Location) error {
	return errors.Newf(errors.ErrNotSupported,
		"symbolic links are not supported from '%s' to '%s'", src.Scheme.Name(), dest.Scheme.Name())
}

func (CopySyncer) Hardlink(ctx context.Context, src, dest Location) (err error) {
	logger := logging.GetLogger("storage.sync")

	staging, err := NewStaging(ctx, dest.Scheme, path.Dir(dest.Path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := staging.Close(ctx); cerr != nil {
			logger.Warn().Err(cerr).Str("staging", staging.Dir()).Msg("Failed to clean up staging directory")
			if err == nil {
				err = cerr
			}
		}
	}()

	r, err := src.Scheme.Open(ctx, src.Path)
	if err != nil {
		return err
	}
	defer r.Close()

	staged := staging.Path(path.Base(dest.Path))
	w, err := dest.Scheme.Create(ctx, staged)
	if err != nil {
		return err
	}
	n, err := io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrStorage, "failed to copy %s", src)
	}

	logger.Debug().Str("src", src.String()).Str("dest", dest.String()).Int64("bytes", n).Msg("Copied file")
	return dest.Scheme.Rename(ctx, staged, dest.Path)
}
