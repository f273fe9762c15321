package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileScheme(t *testing.T) {
	ctx := context.Background()
	s := NewFileScheme()
	dir, err := s.Resolve(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "file", s.Name())

	t.Run("create and read", func(t *testing.T) {
		w, err := s.Create(ctx, dir+"/a.txt")
		require.NoError(t, err)
		_, err = w.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := s.Open(ctx, dir+"/a.txt")
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("type queries", func(t *testing.T) {
		ok, err := s.Exists(ctx, dir+"/a.txt")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.IsFile(ctx, dir+"/a.txt")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.IsDir(ctx, dir)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.Exists(ctx, dir+"/missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("mkdir and list", func(t *testing.T) {
		require.NoError(t, s.MkdirAll(ctx, dir+"/sub/deeper"))
		require.NoError(t, s.MkdirAll(ctx, dir+"/sub/deeper"))

		entries, err := s.ReadDir(ctx, dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []DirEntry{
			{Name: "a.txt", Kind: KindFile},
			{Name: "sub", Kind: KindDir},
		}, entries)
	})

	t.Run("hardlink", func(t *testing.T) {
		require.NoError(t, s.Hardlink(ctx, dir+"/a.txt", dir+"/sub/hard.txt"))

		src, err := os.Stat(filepath.FromSlash(dir + "/a.txt"))
		require.NoError(t, err)
		dst, err := os.Stat(filepath.FromSlash(dir + "/sub/hard.txt"))
		require.NoError(t, err)
		assert.True(t, os.SameFile(src, dst))
	})

	t.Run("symlink listed as file", func(t *testing.T) {
		require.NoError(t, s.Symlink(ctx, dir+"/a.txt", dir+"/sub/soft.txt"))

		target, err := os.Readlink(filepath.FromSlash(dir + "/sub/soft.txt"))
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash(dir+"/a.txt"), target)

		entries, err := s.ReadDir(ctx, dir+"/sub")
		require.NoError(t, err)
		assert.Contains(t, entries, DirEntry{Name: "soft.txt", Kind: KindFile})
	})

	t.Run("rename and remove", func(t *testing.T) {
		require.NoError(t, s.Rename(ctx, dir+"/sub/hard.txt", dir+"/sub/moved.txt"))
		require.NoError(t, s.Remove(ctx, dir+"/sub/moved.txt"))

		ok, err := s.Exists(ctx, dir+"/sub/moved.txt")
		require.NoError(t, err)
		assert.False(t, ok)

		err = s.Remove(ctx, dir+"/sub/moved.txt")
		assert.True(t, errors.IsErrorCode(err, errors.ErrStorage))
	})
}

func TestFileSchemeResolve(t *testing.T) {
	s := NewFileScheme()
	tmp := t.TempDir()

	got, err := s.Resolve(tmp + "/x/../y")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(filepath.FromSlash(got)))
	assert.Equal(t, "y", filepath.Base(got))
}
