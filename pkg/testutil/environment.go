package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/storage"
)

// Env is an isolated in-memory storage environment.
type Env struct {
	t        *testing.T
	FS       afero.Fs
	Registry *storage.Registry
}

// NewEnv builds a registry holding the file scheme and a mem scheme over
// a fresh MemMapFs.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	fs := afero.NewMemMapFs()
	reg := storage.DefaultRegistry()
	require.NoError(t, storage.RegisterMemScheme(reg, fs))
	return &Env{t: t, FS: fs, Registry: reg}
}

// Root resolves spec against the environment registry.
func (e *Env) Root(spec string) *root.Root {
	e.t.Helper()
	r, err := root.New(context.Background(), e.Registry, spec)
	require.NoError(e.t, err)
	return r
}

// Roots parses a src[:dest] spec against the environment registry.
func (e *Env) Roots(spec string) *root.Roots {
	e.t.Helper()
	r, err := root.ParseRoots(context.Background(), e.Registry, spec)
	require.NoError(e.t, err)
	return r
}

// WriteFile creates p with content, making parent directories.
func (e *Env) WriteFile(p, content string) {
	e.t.Helper()
	require.NoError(e.t, e.FS.MkdirAll(path.Dir(p), 0755))
	require.NoError(e.t, afero.WriteFile(e.FS, p, []byte(content), 0644))
}

// ReadFile returns the content of p.
func (e *Env) ReadFile(p string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.FS, p)
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether p exists.
func (e *Env) Exists(p string) bool {
	e.t.Helper()
	ok, err := afero.Exists(e.FS, p)
	require.NoError(e.t, err)
	return ok
}

// WriteManifest records entries as the manifest of dir.
func (e *Env) WriteManifest(dir string, entries ...manifest.FileEntry) {
	e.t.Helper()
	data, err := json.Marshal(map[string][]manifest.FileEntry{"softlinks": entries})
	require.NoError(e.t, err)
	e.WriteFile(manifest.Path(dir), string(data))
}

// ReadManifest loads the manifest entries of dir.
func (e *Env) ReadManifest(dir string) []manifest.FileEntry {
	e.t.Helper()
	doc, err := manifest.Load(context.Background(), storage.NewMemScheme(e.FS), dir)
	require.NoError(e.t, err)
	return doc.Softlinks
}

// Tree declares files by path. Values are file contents.
func (e *Env) Tree(files map[string]string) {
	e.t.Helper()
	for p, content := range files {
		e.WriteFile(p, content)
	}
}

// Snapshot maps every path in the environment to its content, or to
// "<dir>" for directories.
func (e *Env) Snapshot() map[string]string {
	e.t.Helper()
	snap := map[string]string{}
	err := afero.Walk(e.FS, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			snap[p] = "<dir>"
			return nil
		}
		data, err := afero.ReadFile(e.FS, p)
		if err != nil {
			return err
		}
		snap[p] = string(data)
		return nil
	})
	require.NoError(e.t, err)
	return snap
}
