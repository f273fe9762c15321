package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/manifest"
	"github.com/arthur-debert/softsync/pkg/types"
	"github.com/arthur-debert/softsync/pkg/ui"
	"github.com/arthur-debert/softsync/pkg/ui/terminal"
	"github.com/arthur-debert/softsync/pkg/ui/text"
)

func listResult() *types.ListResult {
	return &types.ListResult{
		Root: "file:///data",
		Path: "b",
		Entries: []types.EntryInfo{
			types.NewEntryInfo(manifest.Hard("real.txt")),
			types.NewEntryInfo(manifest.Soft("x.txt", "../a/x.txt")),
		},
	}
}

func render(t *testing.T, format ui.Format, result interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(result))
	return buf.String()
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)
	assert.IsType(t, &text.Renderer{}, r, "non-file writers get plain text")

	r, err = ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)
	assert.IsType(t, &terminal.Renderer{}, r)

	_, err = ui.NewRenderer(ui.Format(42), &buf)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTextList(t *testing.T) {
	assert.Equal(t, "real.txt\nx.txt -> ../a/x.txt\n", render(t, ui.FormatText, listResult()))
}

func TestTextCopy(t *testing.T) {
	dupe := &types.CopyResult{
		Mode:    types.ModeDupe,
		Actions: []types.FileAction{{Source: "a/x.txt", Dest: "b/x.txt", Link: "../a/x.txt"}},
	}
	assert.Equal(t, "b/x.txt -> ../a/x.txt\n", render(t, ui.FormatText, dupe))

	sync := &types.CopyResult{
		Mode:    types.ModeSync,
		DryRun:  true,
		Actions: []types.FileAction{{Source: "/src/b/x.txt", Dest: "/dst/b/x.txt"}},
	}
	assert.Equal(t, "[dry-run] /src/b/x.txt => /dst/b/x.txt\n", render(t, ui.FormatText, sync))
}

func TestTextRepair(t *testing.T) {
	assert.Equal(t, "no repair needed\n", render(t, ui.FormatText, &types.RepairResult{Path: "a"}))

	repaired := &types.RepairResult{
		Path:      "a",
		Conflicts: []manifest.FileEntry{manifest.Soft("f.txt", "../b/f.txt")},
	}
	want := "softlink entries conflict with existing files in a\n" +
		"  f.txt -> ../b/f.txt\n" +
		"\n...repaired\n"
	assert.Equal(t, want, render(t, ui.FormatText, repaired))
}

func TestJSON(t *testing.T) {
	out := render(t, ui.FormatJSON, listResult())

	var got types.ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, *listResult(), got)
}

func TestYAML(t *testing.T) {
	out := render(t, ui.FormatYAML, listResult())
	assert.Contains(t, out, "kind: soft")

	var got types.ListResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, *listResult(), got)
}

func TestMachineErrors(t *testing.T) {
	err := errors.New(errors.ErrDestExists, "destination file exists")

	for _, format := range []ui.Format{ui.FormatJSON, ui.FormatYAML} {
		var buf bytes.Buffer
		r, rerr := ui.NewRenderer(format, &buf)
		require.NoError(t, rerr)
		require.NoError(t, r.RenderError(err))
		assert.Contains(t, buf.String(), "DEST_EXISTS", format.String())
	}
}

func TestTerminal(t *testing.T) {
	out := render(t, ui.FormatTerminal, listResult())
	assert.Contains(t, out, "real.txt")
	assert.Contains(t, out, "../a/x.txt")
	assert.Contains(t, out, "soft")

	out = render(t, ui.FormatTerminal, &types.RepairResult{Path: "a"})
	assert.Contains(t, out, "no repair needed")

	out = render(t, ui.FormatTerminal, &types.CopyResult{Mode: types.ModeSync, DryRun: true})
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "no files matched")
}
