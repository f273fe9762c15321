package softsync

import (
	"context"
	"path"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// SyncFile resolves entry to its real file and materializes it in dest,
// which must live on a different root. Contexts opened while following
// the chain, or mirrored on dest, are taken from and added to cache,
// together with the files already materialized; a nil cache scopes them
// to this call. The receiver's options govern the whole operation.
func (c *Context) SyncFile(ctx context.Context, entry manifest.FileEntry, dest *Context, cache *Cache) error {
	if c.root.Equal(dest.root) {
		return errors.Newf(errors.ErrSameRoot, "invalid sync: source and destination share root %s", c.root)
	}
	if cache == nil {
		cache = NewCache()
	}
	cache.Put(c)
	cache.Put(dest)

	logger := logging.GetLogger("softsync.sync").With().
		Str("src", c.FullPath()).
		Str("entry", entry.Name).
		Logger()

	cur, name := c, entry.Name
	visited := make(map[string]bool)
	for {
		key := cur.path + "\x00" + name
		if visited[key] {
			return errors.Newf(errors.ErrCyclicReference, "cyclic reference: %s in %s", name, cur.path)
		}
		visited[key] = true

		e, ok := cur.files[name]
		if !ok {
			return errors.Newf(errors.ErrLinkUnresolved, "link target cannot be resolved: %s in %s", name, cur.path).
				WithDetail("entry", entry.Name)
		}
		if !e.IsSoft() {
			break
		}

		if c.options.Reconstruct {
			if err := c.mirrorHop(ctx, cur, e, dest, cache); err != nil {
				return err
			}
		}

		next, linkName, err := cur.follow(ctx, e, cache)
		if err != nil {
			return err
		}
		logger.Debug().Str("hop", e.String()).Str("dir", next.path).Msg("Followed soft entry")
		cur, name = next, linkName
	}

	target, targetName := dest, entry.Name
	if c.options.Reconstruct {
		mirrored, err := c.mirror(ctx, cur, dest, cache)
		if err != nil {
			return err
		}
		target, targetName = mirrored, name
	}

	src := storage.Location{Scheme: c.root.Scheme(), Path: cur.root.Abs(path.Join(cur.path, name))}
	return c.materialize(ctx, src, target, targetName, cache)
}

// follow steps across a soft entry, returning the context holding the
// link target and the target's name.
func (c *Context) follow(ctx context.Context, e manifest.FileEntry, cache *Cache) (*Context, string, error) {
	if path.IsAbs(e.Link) {
		return nil, "", errors.Newf(errors.ErrPathEscapedRoot, "path escaped root: %s", e.String())
	}
	linkDir, linkName := path.Split(e.Link)
	rel, err := paths.ResolvePath(c.path + "/" + linkDir)
	if err != nil {
		return nil, "", errors.Wrapf(err, errors.ErrPathEscapedRoot, "path escaped root: %s in %s", e.String(), c.path)
	}
	next, err := cache.Get(ctx, c.root, rel, true, c.options)
	if err != nil {
		return nil, "", err
	}
	return next, linkName, nil
}

// mirror returns the destination context that sits in the same position
// relative to dest as cur does relative to c.
func (c *Context) mirror(ctx context.Context, cur, dest *Context, cache *Cache) (*Context, error) {
	rel, err := paths.ResolvePath(dest.path + "/" + relativeDir(c.path, cur.path))
	if err != nil {
		return nil, err
	}
	return cache.Get(ctx, dest.root, rel, false, dest.options)
}

// mirrorHop records soft entry e of cur in the mirrored destination
// directory and saves it. An identical existing entry is left alone.
func (c *Context) mirrorHop(ctx context.Context, cur *Context, e manifest.FileEntry, dest *Context, cache *Cache) error {
	m, err := c.mirror(ctx, cur, dest, cache)
	if err != nil {
		return err
	}
	if existing, ok := m.files[e.Name]; ok && existing == e {
		return nil
	}
	if err := m.insert(e); err != nil {
		return err
	}
	logger := logging.GetLogger("softsync.sync")
	logger.Debug().
		Str("dir", m.FullPath()).
		Str("entry", e.String()).
		Msg("Reconstructed soft entry")
	return m.Save(ctx)
}

// materialize links src into dir under name. A destination already
// linked to src earlier in the same operation is left as is; one linked
// to another source counts as existing, even under dry-run.
func (c *Context) materialize(ctx context.Context, src storage.Location, dir *Context, name string, cache *Cache) error {
	scheme := dir.root.Scheme()
	dst := storage.Location{Scheme: scheme, Path: dir.root.Abs(path.Join(dir.path, name))}
	logger := logging.GetLogger("softsync.sync").With().
		Str("src", src.String()).
		Str("dest", dst.String()).
		Bool("dry_run", c.options.DryRun).
		Logger()

	prior, planned := cache.linked(dst)
	if planned && prior == src.String() {
		logger.Debug().Msg("Already materialized")
		return nil
	}

	exists, err := scheme.Exists(ctx, dst.Path)
	if err != nil {
		return err
	}
	if exists {
		isDir, err := scheme.IsDir(ctx, dst.Path)
		if err != nil {
			return err
		}
		if isDir {
			return errors.Newf(errors.ErrDestIsDir, "destination is a directory: %s", dst)
		}
	}
	if (exists || planned) && !c.options.Force {
		return errors.Newf(errors.ErrDestExists, "destination file exists: %s", dst)
	}

	shadow, hasShadow := dir.files[name]
	hasShadow = hasShadow && shadow.IsSoft()
	if hasShadow && !c.options.Force {
		return errors.Newf(errors.ErrDestExists, "destination file exists: %s (soft entry %s)", dst, shadow)
	}

	syncer, err := c.root.Registry().ForSchemes(src.Scheme.Name(), scheme.Name())
	if err != nil {
		return err
	}

	if hasShadow {
		dir.remove(name)
		if err := dir.Save(ctx); err != nil {
			return err
		}
	}

	if c.options.DryRun {
		cache.link(dst, src)
		logger.Info().Msg("Dry run, not materializing")
		return nil
	}

	if exists {
		if err := scheme.Remove(ctx, dst.Path); err != nil {
			return err
		}
	}
	if err := scheme.MkdirAll(ctx, path.Dir(dst.Path)); err != nil {
		return err
	}

	if c.options.Symbolic {
		err = syncer.Symlink(ctx, src, dst)
	} else {
		err = syncer.Hardlink(ctx, src, dst)
	}
	if err != nil {
		return err
	}

	dir.files[name] = manifest.Hard(name)
	cache.link(dst, src)
	logger.Debug().Bool("symbolic", c.options.Symbolic).Msg("Materialized file")
	return nil
}
