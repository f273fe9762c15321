package storage

import (
	"context"
	"path"

	"github.com/google/uuid"
)

// stagingPrefix marks staging directories. They are directories, so a
// softsync context never mistakes one for a hard entry.
const stagingPrefix = ".softsync-staging-"

// Staging is a temporary directory owned by a single sync operation.
// Callers must Close it on every exit path.
type Staging struct {
	scheme Scheme
	dir    string
	files  []string
}

// NewStaging creates a uniquely named staging directory under parent.
func NewStaging(ctx context.Context, scheme Scheme, parent string) (*Staging, error) {
	dir := path.Join(parent, stagingPrefix+uuid.NewString())
	if err := scheme.MkdirAll(ctx, dir); err != nil {
		return nil, err
	}
	return &Staging{scheme: scheme, dir: dir}, nil
}

// Dir returns the staging directory path.
func (s *Staging) Dir() string {
	return s.dir
}

// Path returns a path for name inside the staging directory and tracks
// it for cleanup.
func (s *Staging) Path(name string) string {
	p := path.Join(s.dir, name)
	s.files = append(s.files, p)
	return p
}

// Close removes any staged files still present and the directory itself.
func (s *Staging) Close(ctx context.Context) error {
	for _, f := range s.files {
		exists, err := s.scheme.Exists(ctx, f)
		if err != nil {
			return err
		}
		if exists {
			if err := s.scheme.Remove(ctx, f); err != nil {
				return err
			}
		}
	}
	exists, err := s.scheme.Exists(ctx, s.dir)
	if err != nil || !exists {
		return err
	}
	return s.scheme.Remove(ctx, s.dir)
}
