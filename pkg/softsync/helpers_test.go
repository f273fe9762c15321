package softsync

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type memEnv struct {
	fs  afero.Fs
	reg *storage.Registry
	src *root.Root
	dst *root.Root
}

func newMemEnv(t *testing.T) *memEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	reg := storage.DefaultRegistry()
	require.NoError(t, storage.RegisterMemScheme(reg, fs))
	require.NoError(t, fs.MkdirAll("/src", 0755))

	src, err := root.New(context.Background(), reg, "mem://src")
	require.NoError(t, err)
	dst, err := root.New(context.Background(), reg, "mem://dst")
	require.NoError(t, err)
	return &memEnv{fs: fs, reg: reg, src: src, dst: dst}
}

func (e *memEnv) write(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, e.fs.MkdirAll(path.Dir(p), 0755))
	require.NoError(t, afero.WriteFile(e.fs, p, []byte(content), 0644))
}

func (e *memEnv) read(t *testing.T, p string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, p)
	require.NoError(t, err)
	return string(data)
}

func (e *memEnv) open(t *testing.T, r *root.Root, rel string, mustExist bool, opts Options) *Context {
	t.Helper()
	c, err := Open(context.Background(), r, rel, mustExist, opts)
	require.NoError(t, err)
	return c
}

// snapshot captures every path and file content in the fs.
func (e *memEnv) snapshot(t *testing.T) map[string]string {
	t.Helper()
	snap := map[string]string{}
	err := afero.Walk(e.fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			snap[p] = "<dir>"
			return nil
		}
		data, err := afero.ReadFile(e.fs, p)
		if err != nil {
			return err
		}
		snap[p] = string(data)
		return nil
	})
	require.NoError(t, err)
	return snap
}
