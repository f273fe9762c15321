package cp

import (
	"context"
	"testing"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/testutil"
	"github.com/arthur-debert/softsync/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDupe(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewEnv(t)
	env.Tree(map[string]string{
		"/r/src/a.txt": "a",
		"/r/src/b.txt": "b",
		"/r/src/c.md":  "c",
	})
	roots := &root.Roots{Src: env.Root("mem://r")}

	t.Run("glob into directory", func(t *testing.T) {
		result, err := Copy(ctx, CopyOptions{Roots: roots, Args: []string{"src/*.txt", "dest"}})
		require.NoError(t, err)
		assert.Equal(t, types.ModeDupe, result.Mode)
		assert.Equal(t, []types.FileAction{
			{Source: "src/a.txt", Dest: "dest/a.txt", Link: "../src/a.txt"},
			{Source: "src/b.txt", Dest: "dest/b.txt", Link: "../src/b.txt"},
		}, result.Actions)

		assert.Equal(t, []manifest.FileEntry{
			manifest.Soft("a.txt", "../src/a.txt"),
			manifest.Soft("b.txt", "../src/b.txt"),
		}, env.ReadManifest("/r/dest"))
	})

	t.Run("single file renamed", func(t *testing.T) {
		_, err := Copy(ctx, CopyOptions{Roots: roots, Args: []string{"src/c.md", "docs/readme.md"}})
		require.NoError(t, err)
		assert.Equal(t, []manifest.FileEntry{manifest.Soft("readme.md", "../src/c.md")}, env.ReadManifest("/r/docs"))
	})

	t.Run("existing entry needs force", func(t *testing.T) {
		_, err := Copy(ctx, CopyOptions{Roots: roots, Args: []string{"src/a.txt", "dest"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

		_, err = Copy(ctx, CopyOptions{
			Roots:   roots,
			Args:    []string{"src/a.txt", "dest"},
			Options: softsync.Options{Force: true},
		})
		assert.NoError(t, err)
	})

	t.Run("dry run saves nothing", func(t *testing.T) {
		before := env.Snapshot()
		result, err := Copy(ctx, CopyOptions{
			Roots:   roots,
			Args:    []string{"src", "elsewhere"},
			Options: softsync.Options{DryRun: true},
		})
		require.NoError(t, err)
		assert.True(t, result.DryRun)
		assert.Len(t, result.Actions, 3)
		assert.Equal(t, before, env.Snapshot())
	})

	t.Run("no match", func(t *testing.T) {
		result, err := Copy(ctx, CopyOptions{Roots: roots, Args: []string{"src/*.go", "dest"}})
		require.NoError(t, err)
		assert.Empty(t, result.Actions)
	})
}

func TestCopyDupeUsageErrors(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewEnv(t)
	env.Tree(map[string]string{
		"/r/src/a.txt": "a",
		"/r/src/b.txt": "b",
	})
	roots := &root.Roots{Src: env.Root("mem://r")}

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"one arg", []string{"src"}, errors.ErrInvalidInput},
		{"nested", []string{"src", "src/sub"}, errors.ErrNotDisjoint},
		{"glob onto file", []string{"src/*.txt", "dest/x.txt"}, errors.ErrInvalidInput},
		{"many onto file", []string{"src", "dest/x.txt"}, errors.ErrInvalidInput},
		{"escaping", []string{"../src", "dest"}, errors.ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Copy(ctx, CopyOptions{Roots: roots, Args: tt.args})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), err.Error())
			assert.True(t, errors.IsUsage(err))
		})
	}
}

func TestCopySync(t *testing.T) {
	ctx := context.Background()
	env := testutil.NewEnv(t)
	env.Tree(map[string]string{
		"/r1/docs/a.txt": "real",
		"/r1/docs/b.md":  "md",
	})
	env.WriteManifest("/r1/docs", manifest.Soft("c.txt", "a.txt"))
	roots := &root.Roots{Src: env.Root("mem://r1"), Dest: env.Root("mem://r2")}

	result, err := Copy(ctx, CopyOptions{Roots: roots, Args: []string{"docs/*.txt"}})
	require.NoError(t, err)
	assert.Equal(t, types.ModeSync, result.Mode)
	assert.Equal(t, []types.FileAction{
		{Source: "/r1/docs/a.txt", Dest: "/r2/docs/a.txt"},
		{Source: "/r1/docs/c.txt", Dest: "/r2/docs/c.txt"},
	}, result.Actions)

	assert.Equal(t, "real", env.ReadFile("/r2/docs/a.txt"))
	assert.Equal(t, "real", env.ReadFile("/r2/docs/c.txt"))
	assert.False(t, env.Exists("/r2/docs/b.md"))

	_, err = Copy(ctx, CopyOptions{Roots: roots, Args: []string{"docs", "extra"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = Copy(ctx, CopyOptions{Roots: roots, Args: []string{"docs/a.txt"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestExists))
}
