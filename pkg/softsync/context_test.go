package softsync

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	env.write(t, "/src/sub/inner.txt", "i")
	env.write(t, "/src/.softsync", `{"softlinks": [{"name": "b.txt", "link": "a.txt"}]}`)

	t.Run("unified view", func(t *testing.T) {
		c := env.open(t, env.src, ".", true, Options{})
		assert.Equal(t, []manifest.FileEntry{
			manifest.Hard("a.txt"),
			manifest.Soft("b.txt", "a.txt"),
		}, c.List(nil))
		assert.Equal(t, "/src", c.FullPath())
		assert.Equal(t, ".", c.Path())
	})

	t.Run("missing directory must exist", func(t *testing.T) {
		_, err := Open(ctx, env.src, "nope", true, Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotFound))
	})

	t.Run("missing directory as destination", func(t *testing.T) {
		c := env.open(t, env.src, "nope/deeper", false, Options{})
		assert.Empty(t, c.List(nil))
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := Open(ctx, env.src, "a.txt", true, Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))
	})

	t.Run("escaping path", func(t *testing.T) {
		_, err := Open(ctx, env.src, "../other", false, Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscapedRoot))
	})

	t.Run("manifest location blocked", func(t *testing.T) {
		require.NoError(t, env.fs.MkdirAll("/src/blocked/.softsync", 0755))
		_, err := Open(ctx, env.src, "blocked", true, Options{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestConflict))
	})
}

func TestOpenConflicts(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	env.write(t, "/src/c.txt", "c")
	env.write(t, "/src/.softsync", `{"softlinks": [
		{"name": "a.txt", "link": "x/a.txt"},
		{"name": "b.txt", "link": "c.txt"},
		{"name": "c.txt", "link": "y/c.txt"}
	]}`)

	t.Run("corruption signal", func(t *testing.T) {
		_, err := Open(ctx, env.src, ".", true, Options{})
		require.Error(t, err)

		var corrupt *CorruptError
		require.True(t, stderrors.As(err, &corrupt))
		assert.Equal(t, []manifest.FileEntry{
			manifest.Soft("a.txt", "x/a.txt"),
			manifest.Soft("c.txt", "y/c.txt"),
		}, corrupt.Conflicts)
		assert.Equal(t, errors.ErrManifestCorrupt, errors.GetErrorCode(err))
		assert.Equal(t, "softlink entries conflict with existing files in .\n  a.txt -> x/a.txt\n  c.txt -> y/c.txt", err.Error())

		assert.Equal(t, []manifest.FileEntry{
			manifest.Hard("a.txt"),
			manifest.Soft("b.txt", "c.txt"),
			manifest.Hard("c.txt"),
		}, corrupt.Context.List(nil))
	})

	t.Run("force lets hard entries win", func(t *testing.T) {
		c, err := Open(ctx, env.src, ".", true, Options{Force: true})
		require.NoError(t, err)
		e, ok := c.Entry("a.txt")
		require.True(t, ok)
		assert.False(t, e.IsSoft())
	})
}

func TestOpenDuplicateSoftEntries(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/.softsync", `{"softlinks": [
		{"name": "b.txt", "link": "one.txt"},
		{"name": "b.txt", "link": "two.txt"}
	]}`)

	_, err := Open(ctx, env.src, ".", true, Options{})
	var corrupt *CorruptError
	require.True(t, stderrors.As(err, &corrupt))
	assert.Equal(t, []manifest.FileEntry{manifest.Soft("b.txt", "two.txt")}, corrupt.Conflicts)

	c, err := Open(ctx, env.src, ".", true, Options{Force: true})
	require.NoError(t, err)
	e, _ := c.Entry("b.txt")
	assert.Equal(t, "two.txt", e.Link)
}

func TestDupeScenario(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")

	c := env.open(t, env.src, ".", true, Options{})
	a, ok := c.Entry("a.txt")
	require.True(t, ok)

	require.NoError(t, c.Dupe(a, ".", AsName("b.txt")))
	require.NoError(t, c.Save(ctx))

	doc, err := manifest.Parse([]byte(env.read(t, "/src/.softsync")))
	require.NoError(t, err)
	assert.Equal(t, []manifest.FileEntry{manifest.Soft("b.txt", "a.txt")}, doc.Softlinks)

	reopened := env.open(t, env.src, ".", true, Options{})
	assert.Equal(t, []manifest.FileEntry{
		manifest.Hard("a.txt"),
		manifest.Soft("b.txt", "a.txt"),
	}, reopened.List(nil))
}

func TestDupeInsertionRules(t *testing.T) {
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	env.write(t, "/src/b.txt", "b")

	c := env.open(t, env.src, ".", true, Options{})
	a, _ := c.Entry("a.txt")

	err := c.Dupe(a, ".", AsName("b.txt"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	assert.Contains(t, err.Error(), "file already exists")

	require.NoError(t, c.Dupe(a, "../elsewhere", AsName("c.txt")))
	err = c.Dupe(a, ".", AsName("c.txt"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists), "soft entry without force")

	forced := env.open(t, env.src, ".", true, Options{Force: true})
	require.NoError(t, forced.Dupe(a, "x", AsName("c.txt")))
	require.NoError(t, forced.Dupe(a, "y", AsName("c.txt")))
	e, _ := forced.Entry("c.txt")
	assert.Equal(t, "y/a.txt", e.Link)
	assert.True(t, errors.IsErrorCode(forced.Dupe(a, ".", AsName("b.txt")), errors.ErrAlreadyExists), "hard entry with force")

	assert.True(t, errors.IsErrorCode(c.Dupe(a, ".", AsName("x/y")), errors.ErrInvalidPath))
	assert.True(t, errors.IsErrorCode(c.Dupe(a, ".", AsName(".softsync")), errors.ErrInvalidPath))
}

func TestDupeNamer(t *testing.T) {
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")

	dest := env.open(t, env.src, "copies", false, Options{})
	src := env.open(t, env.src, ".", true, Options{})
	rel, err := src.RelativePathTo(dest)
	require.NoError(t, err)
	assert.Equal(t, "..", rel)

	a, _ := src.Entry("a.txt")
	require.NoError(t, dest.Dupe(a, rel, func(name string) string { return "copy-" + name }))
	require.NoError(t, dest.Dupe(a, rel, nil))

	assert.Equal(t, []manifest.FileEntry{
		manifest.Soft("a.txt", "../a.txt"),
		manifest.Soft("copy-a.txt", "../a.txt"),
	}, dest.List(nil))
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	env.write(t, "/src/.softsync", `{"owner": "someone", "softlinks": [{"name": "z.txt", "link": "a.txt"}]}`)

	c := env.open(t, env.src, ".", true, Options{})
	a, _ := c.Entry("a.txt")
	require.NoError(t, c.Dupe(a, ".", AsName("m.txt")))
	require.NoError(t, c.Save(ctx))

	reopened := env.open(t, env.src, ".", true, Options{})
	assert.ElementsMatch(t, c.List(nil), reopened.List(nil))
	assert.Contains(t, env.read(t, "/src/.softsync"), `"owner": "someone"`)

	doc, err := manifest.Parse([]byte(env.read(t, "/src/.softsync")))
	require.NoError(t, err)
	assert.Equal(t, []manifest.FileEntry{
		manifest.Soft("m.txt", "a.txt"),
		manifest.Soft("z.txt", "a.txt"),
	}, doc.Softlinks)
}

func TestSaveCreatesDirectoryAndHonoursDryRun(t *testing.T) {
	ctx := context.Background()
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	src := env.open(t, env.src, ".", true, Options{})
	a, _ := src.Entry("a.txt")

	dry := env.open(t, env.src, "new/dir", false, Options{DryRun: true})
	require.NoError(t, dry.Dupe(a, "../..", nil))
	require.NoError(t, dry.Save(ctx))
	exists, err := env.src.Scheme().Exists(ctx, "/src/new")
	require.NoError(t, err)
	assert.False(t, exists)

	persisted := env.open(t, env.src, "new/dir", false, Options{})
	require.NoError(t, persisted.Dupe(a, "../..", nil))
	require.NoError(t, persisted.Save(ctx))
	assert.Contains(t, env.read(t, "/src/new/dir/.softsync"), `"../../a.txt"`)
}

func TestRelativePathTo(t *testing.T) {
	env := newMemEnv(t)

	tests := []struct {
		src, dest string
		want      string
	}{
		{"a/b", "a/c", "../b"},
		{".", "x/y", "../.."},
		{"x", ".", "x"},
		{"x/y", "x/y", "."},
		{"p/q/r", "s", "../p/q/r"},
	}

	for _, tt := range tests {
		t.Run(tt.src+"~"+tt.dest, func(t *testing.T) {
			src := env.open(t, env.src, tt.src, false, Options{})
			dest := env.open(t, env.src, tt.dest, false, Options{})
			got, err := src.RelativePathTo(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("different roots", func(t *testing.T) {
		src := env.open(t, env.src, ".", false, Options{})
		dest := env.open(t, env.dst, ".", false, Options{})
		_, err := src.RelativePathTo(dest)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestList(t *testing.T) {
	env := newMemEnv(t)
	env.write(t, "/src/a.txt", "a")
	env.write(t, "/src/b.md", "b")
	env.write(t, "/src/.softsync", `{"softlinks": [{"name": "c.txt", "link": "a.txt"}]}`)
	c := env.open(t, env.src, ".", true, Options{})

	assert.Len(t, c.List(nil), 3)
	assert.Equal(t, []manifest.FileEntry{
		manifest.Hard("a.txt"),
		manifest.Soft("c.txt", "a.txt"),
	}, c.List(matchers.MustGlob("*.txt")))
	assert.Equal(t, []manifest.FileEntry{manifest.Hard("b.md")},
		c.List(matchers.Func(func(name string) bool { return name == "b.md" })))
}
