package paths

import (
	"path"
	"strings"

	"github.com/arthur-debert/softsync/pkg/errors"
)

// maxPathLength matches the common filesystem PATH_MAX.
const maxPathLength = 4096

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - NUL bytes
// - Excessive path length
func ValidatePath(p string) error {
	if p == "" {
		return errors.New(errors.ErrInvalidPath, "path cannot be empty")
	}

	if strings.Contains(p, "\x00") {
		return errors.New(errors.ErrInvalidPath, "path contains null bytes")
	}

	if len(p) > maxPathLength {
		return errors.New(errors.ErrInvalidPath, "path exceeds maximum length")
	}

	return nil
}

// IsGlobPattern reports whether name holds a wildcard.
func IsGlobPattern(name string) bool {
	return strings.ContainsAny(name, "*?")
}

// Components splits a relative path into its non-empty components. The
// root itself ("." or "") has none.
func Components(p string) []string {
	p = path.Clean(p)
	if p == "." || p == "/" {
		return nil
	}
	return strings.Split(strings.Trim(p, "/"), "/")
}

// ContainsPath reports whether child equals parent or lies below it.
func ContainsPath(parent, child string) bool {
	pc := Components(parent)
	cc := Components(child)
	if len(cc) < len(pc) {
		return false
	}
	for i := range pc {
		if pc[i] != cc[i] {
			return false
		}
	}
	return true
}

// CheckDisjoint reports whether neither path contains the other.
func CheckDisjoint(a, b string) bool {
	return !ContainsPath(a, b) && !ContainsPath(b, a)
}

// CommonPrefix returns the number of leading components a and b share.
func CommonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
