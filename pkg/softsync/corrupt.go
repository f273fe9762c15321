package softsync

import (
	"strings"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/manifest"
)

// CorruptError reports manifest entries that collide with real files.
// Context holds the directory view with the real files installed and the
// conflicting entries dropped; saving it repairs the manifest.
type CorruptError struct {
	Path      string
	Conflicts []manifest.FileEntry
	Context   *Context
}

func (e *CorruptError) Error() string {
	lines := make([]string, 0, len(e.Conflicts)+1)
	lines = append(lines, "softlink entries conflict with existing files in "+e.Path)
	for _, c := range e.Conflicts {
		lines = append(lines, "  "+c.String())
	}
	return strings.Join(lines, "\n")
}

// ErrorCode lets errors.GetErrorCode classify the signal.
func (e *CorruptError) ErrorCode() errors.ErrorCode {
	return errors.ErrManifestCorrupt
}
