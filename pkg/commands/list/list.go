// Package list implements the softsync ls workflow.
package list

import (
	"context"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/matchers"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	// Root is the root the path is relative to.
	Root *root.Root
	// Path is a directory, optionally followed by a file name or glob.
	Path string
	// Options are passed to the opened context.
	Options softsync.Options
}

// List returns the unified entry view of one directory.
func List(ctx context.Context, opts ListOptions) (*types.ListResult, error) {
	log := logging.CommandLogger("ls")
	log.Debug().Str("path", opts.Path).Msg("Executing command")

	if opts.Root == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no root given")
	}
	dir, file, err := paths.SplitPath(ctx, opts.Root.Scheme(), opts.Root.Path(), opts.Path)
	if err != nil {
		return nil, err
	}

	c, err := softsync.Open(ctx, opts.Root, dir, true, opts.Options)
	if err != nil {
		return nil, err
	}
	m, err := matchers.Pattern(file)
	if err != nil {
		return nil, err
	}

	result := &types.ListResult{Root: opts.Root.String(), Path: dir}
	for _, e := range c.List(m) {
		result.Entries = append(result.Entries, types.NewEntryInfo(e))
	}

	log.Info().Int("entryCount", len(result.Entries)).Msg("Command finished")
	return result, nil
}
