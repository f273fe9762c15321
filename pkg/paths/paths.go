package paths

import (
	"context"
	"path"
	"strings"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// SplitPath separates a user supplied path, relative to rootPath on
// scheme, into a directory and an optional file name or glob. An
// existing directory is returned whole. An existing file, or a missing
// path whose last component is a glob or has an extension, is split into
// parent and name.
func SplitPath(ctx context.Context, scheme storage.Scheme, rootPath, p string) (dir, file string, err error) {
	if p == "" || p == "." {
		return ".", "", nil
	}
	if err := ValidatePath(p); err != nil {
		return "", "", err
	}
	if path.IsAbs(p) {
		return "", "", errors.Newf(errors.ErrInvalidPath, "invalid path: %s cannot be absolute", p)
	}

	parts := Components(strings.TrimSuffix(p, "/"))
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", "", errors.Newf(errors.ErrInvalidPath, "invalid path: %s cannot contain relative components", p)
		}
	}
	if len(parts) == 0 {
		return ".", "", nil
	}
	for _, part := range parts[:len(parts)-1] {
		if IsGlobPattern(part) {
			return "", "", errors.Newf(errors.ErrInvalidPath, "invalid path: %s cannot contain glob pattern in parent path", p)
		}
	}

	rel := strings.Join(parts, "/")
	parent, name := path.Split(rel)
	parent = path.Clean(parent)

	full := path.Join(rootPath, rel)
	exists, err := scheme.Exists(ctx, full)
	if err != nil {
		return "", "", err
	}
	if exists {
		isDir, err := scheme.IsDir(ctx, full)
		if err != nil {
			return "", "", err
		}
		if isDir {
			return rel, "", nil
		}
		return parent, name, nil
	}
	if IsGlobPattern(name) || path.Ext(name) != "" {
		return parent, name, nil
	}
	return rel, "", nil
}

// ResolvePath collapses "." and ".." in a relative path. A ".." that
// would climb above the starting point fails with ErrPathEscapedRoot.
func ResolvePath(p string) (string, error) {
	var resolved []string
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
		case "..":
			if len(resolved) == 0 {
				return "", errors.Newf(errors.ErrPathEscapedRoot, "path escaped root: %s", p)
			}
			resolved = resolved[:len(resolved)-1]
		default:
			resolved = append(resolved, part)
		}
	}
	if len(resolved) == 0 {
		return ".", nil
	}
	return strings.Join(resolved, "/"), nil
}
