package softsync

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/matchers"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// Context is the unified entry view of one directory under a root.
type Context struct {
	root    *root.Root
	path    string
	options Options
	files   map[string]manifest.FileEntry
	doc     *manifest.Document
}

// Open loads the directory at relPath under r. With mustExist the
// directory has to be present; otherwise a missing directory yields an
// empty context that is created on Save. Manifest entries colliding with
// real files produce a *CorruptError that carries the sanitized context.
func Open(ctx context.Context, r *root.Root, relPath string, mustExist bool, opts Options) (*Context, error) {
	rel, err := paths.ResolvePath(relPath)
	if err != nil {
		return nil, err
	}

	c := &Context{
		root:    r,
		path:    rel,
		options: opts,
		files:   make(map[string]manifest.FileEntry),
		doc:     &manifest.Document{},
	}
	logger := logging.GetLogger("softsync.context").With().Str("dir", c.FullPath()).Logger()

	scheme := r.Scheme()
	full := c.FullPath()
	exists, err := scheme.Exists(ctx, full)
	if err != nil {
		return nil, err
	}
	if !exists {
		if mustExist {
			return nil, errors.Newf(errors.ErrDirNotFound, "directory does not exist: %s", full).
				WithDetail("path", rel)
		}
		logger.Debug().Msg("Opened context for missing directory")
		return c, nil
	}
	isDir, err := scheme.IsDir(ctx, full)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, errors.Newf(errors.ErrNotADirectory, "not a directory: %s", full).
			WithDetail("path", rel)
	}

	entries, err := scheme.ReadDir(ctx, full)
	if err != nil {
		return nil, err
	}
	for _, de := range entries {
		if de.Kind != storage.KindFile || de.Name == manifest.FileName {
			continue
		}
		if _, ok := c.files[de.Name]; ok {
			panic(fmt.Sprintf("filesystem conflict: %s in %s", de.Name, full))
		}
		c.files[de.Name] = manifest.Hard(de.Name)
	}

	doc, err := manifest.Load(ctx, scheme, full)
	if err != nil {
		return nil, err
	}
	c.doc = doc

	var conflicts []manifest.FileEntry
	for _, e := range doc.Softlinks {
		existing, ok := c.files[e.Name]
		switch {
		case !ok:
			c.files[e.Name] = e
		case existing.IsSoft() && opts.Force:
			c.files[e.Name] = e
		case !existing.IsSoft() && opts.Force:
			logger.Warn().Str("entry", e.String()).Msg("Dropping softlink shadowed by a real file")
		default:
			conflicts = append(conflicts, e)
		}
	}

	logger.Debug().Int("entries", len(c.files)).Int("conflicts", len(conflicts)).Msg("Loaded context")
	if len(conflicts) > 0 {
		return nil, &CorruptError{Path: rel, Conflicts: conflicts, Context: c}
	}
	return c, nil
}

func (c *Context) Root() *root.Root { return c.root }

// Path is the directory relative to the root, "." for the root itself.
func (c *Context) Path() string { return c.path }

// FullPath is the directory path in the scheme's namespace.
func (c *Context) FullPath() string { return c.root.Abs(c.path) }

func (c *Context) Options() Options { return c.options }

// Entry looks up a single entry by name.
func (c *Context) Entry(name string) (manifest.FileEntry, bool) {
	e, ok := c.files[name]
	return e, ok
}

// List returns the entries selected by m, or all entries when m is nil,
// ordered by name.
func (c *Context) List(m matchers.Matcher) []manifest.FileEntry {
	out := make([]manifest.FileEntry, 0, len(c.files))
	for name, e := range c.files {
		if m == nil || m.Match(name) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Namer maps a source entry name to the name of its duplicate.
type Namer func(name string) string

// AsName returns a Namer that always yields name.
func AsName(name string) Namer {
	return func(string) string { return name }
}

// Dupe registers a soft entry linking to src, which lives at relPath from
// this directory. The new entry is named by namer, or after src when
// namer is nil. Nothing is persisted until Save.
func (c *Context) Dupe(src manifest.FileEntry, relPath string, namer Namer) error {
	name := src.Name
	if namer != nil {
		name = namer(src.Name)
	}
	if name == "" || strings.Contains(name, "/") || name == manifest.FileName {
		return errors.Newf(errors.ErrInvalidPath, "invalid file name: '%s'", name)
	}

	entry := manifest.Soft(name, path.Join(relPath, src.Name))
	if err := c.insert(entry); err != nil {
		return err
	}
	logger := logging.GetLogger("softsync.context")
	logger.Debug().
		Str("dir", c.FullPath()).
		Str("entry", entry.String()).
		Msg("Registered soft entry")
	return nil
}

// insert adds e unless the name is taken by a real file, or by a soft
// entry while force is unset.
func (c *Context) insert(e manifest.FileEntry) error {
	if existing, ok := c.files[e.Name]; ok && (!existing.IsSoft() || !c.options.Force) {
		return errors.Newf(errors.ErrAlreadyExists, "file already exists: %s", existing).
			WithDetail("dir", c.path)
	}
	c.files[e.Name] = e
	return nil
}

// remove drops a soft entry; hard entries stay since the file remains.
func (c *Context) remove(name string) {
	if e, ok := c.files[name]; ok && e.IsSoft() {
		delete(c.files, name)
	}
}

// Save writes the soft entries to the manifest, creating the directory
// if needed. It does nothing under dry-run.
func (c *Context) Save(ctx context.Context) error {
	if c.options.DryRun {
		logger := logging.GetLogger("softsync.context")
		logger.Debug().Str("dir", c.FullPath()).Msg("Dry run, manifest not saved")
		return nil
	}
	soft := make([]manifest.FileEntry, 0, len(c.files))
	for _, e := range c.files {
		if e.IsSoft() {
			soft = append(soft, e)
		}
	}
	c.doc.Softlinks = soft
	return c.doc.Save(ctx, c.root.Scheme(), c.FullPath())
}

// RelativePathTo returns the path leading from other's directory to this
// one. Both contexts must share a root.
func (c *Context) RelativePathTo(other *Context) (string, error) {
	if !c.root.Equal(other.root) {
		return "", errors.Newf(errors.ErrInvalidInput, "contexts must have same root: %s and %s", c.root, other.root)
	}
	return relativeDir(other.path, c.path), nil
}

// relativeDir returns the path from directory from to directory to,
// both relative to the same root.
func relativeDir(from, to string) string {
	f := paths.Components(from)
	t := paths.Components(to)
	n := paths.CommonPrefix(f, t)

	parts := make([]string, 0, len(f)-n+len(t)-n)
	for range f[n:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[n:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}
