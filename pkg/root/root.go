// Package root parses root specifications into validated storage
// locations.
//
// A root is written either as a bare filesystem path or as
// scheme://location. Two roots may be joined as src:dest.
package root

import (
	"context"
	"path"
	"strings"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// Root is a resolved directory on one storage scheme. It keeps the
// registry it was resolved against so that contexts opened under it can
// look up sync strategies.
type Root struct {
	registry *storage.Registry
	scheme   storage.Scheme
	path     string
}

// New resolves spec against reg. The root may not exist yet, but if it
// exists it must be a directory.
func New(ctx context.Context, reg *storage.Registry, spec string) (*Root, error) {
	name, location, found := strings.Cut(spec, "://")
	if !found {
		name, location = storage.FileSchemeName, spec
	}
	if name == "" || strings.ContainsAny(location, "?#;") {
		return nil, errors.Newf(errors.ErrInvalidRoot, "invalid root, failed to parse: %s", spec)
	}

	scheme, err := reg.ForName(name)
	if err != nil {
		return nil, err
	}

	if location == "" {
		location = "."
	}
	resolved, err := scheme.Resolve(location)
	if err != nil {
		return nil, err
	}

	exists, err := scheme.Exists(ctx, resolved)
	if err != nil {
		return nil, err
	}
	if exists {
		isDir, err := scheme.IsDir(ctx, resolved)
		if err != nil {
			return nil, err
		}
		if !isDir {
			return nil, errors.Newf(errors.ErrInvalidRoot, "invalid root: %s is not a directory", resolved)
		}
	}

	r := &Root{registry: reg, scheme: scheme, path: resolved}
	logger := logging.GetLogger("softsync.root")
	logger.Debug().Str("root", r.String()).Bool("exists", exists).Msg("Resolved root")
	return r, nil
}

func (r *Root) Scheme() storage.Scheme { return r.scheme }

// Path is the resolved absolute root path in the scheme's namespace.
func (r *Root) Path() string { return r.path }

func (r *Root) Registry() *storage.Registry { return r.registry }

// Abs joins a root-relative path onto the root path.
func (r *Root) Abs(rel string) string {
	return path.Join(r.path, rel)
}

func (r *Root) String() string {
	return r.scheme.Name() + "://" + r.path
}

// Equal reports whether both roots name the same directory on the same
// scheme.
func (r *Root) Equal(other *Root) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.scheme.Name() == other.scheme.Name() && r.path == other.path
}

// Roots is a source root and an optional destination root.
type Roots struct {
	Src  *Root
	Dest *Root
}

// ParseRoots parses "src[:dest]". The "://" scheme separator and Windows
// drive separators are not treated as root separators.
func ParseRoots(ctx context.Context, reg *storage.Registry, spec string) (*Roots, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New(errors.ErrInvalidRoot, "invalid root, empty")
	}
	if strings.ContainsAny(spec, "*?") {
		return nil, errors.New(errors.ErrInvalidRoot, "invalid root, invalid chars")
	}

	protected := strings.NewReplacer("://", "*", `:\`, "?").Replace(spec)
	parts := strings.Split(protected, ":")
	if len(parts) > 2 {
		return nil, errors.New(errors.ErrInvalidRoot, "invalid roots: expected 1 or 2 components")
	}
	restore := strings.NewReplacer("*", "://", "?", `:\`)

	src, err := New(ctx, reg, restore.Replace(parts[0]))
	if err != nil {
		return nil, err
	}
	roots := &Roots{Src: src}
	if len(parts) == 1 {
		return roots, nil
	}

	dest, err := New(ctx, reg, restore.Replace(parts[1]))
	if err != nil {
		return nil, err
	}
	if dest.scheme.Name() != storage.FileSchemeName {
		return nil, errors.Newf(errors.ErrInvalidRoot, "invalid root: destination must use the '%s' scheme, got '%s'",
			storage.FileSchemeName, dest.scheme.Name())
	}
	if src.scheme.Name() == dest.scheme.Name() && !paths.CheckDisjoint(src.path, dest.path) {
		return nil, errors.Newf(errors.ErrNotDisjoint, "invalid roots: '%s' and '%s' must be disjoint", src, dest)
	}
	roots.Dest = dest
	return roots, nil
}
