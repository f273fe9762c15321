// Package repair drops manifest entries that collide with real files.
package repair

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/types"
)

// RepairOptions defines the options for the Repair command.
type RepairOptions struct {
	Root    *root.Root
	Path    string
	Options softsync.Options
}

// Repair opens the directory at Path and, if its manifest conflicts with
// the real files, saves the sanitized manifest unless dry-run. The
// result lists the dropped entries, or none when nothing needed fixing.
func Repair(ctx context.Context, opts RepairOptions) (*types.RepairResult, error) {
	log := logging.CommandLogger("repair")
	log.Debug().Str("path", opts.Path).Msg("Executing command")

	if opts.Root == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no root given")
	}
	dir, file, err := paths.SplitPath(ctx, opts.Root.Scheme(), opts.Root.Path(), opts.Path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		return nil, errors.Newf(errors.ErrInvalidPath, "path must be a directory: %s", opts.Path)
	}

	// Force would hide conflicts behind the real files.
	detect := opts.Options
	detect.Force = false

	result := &types.RepairResult{Path: dir, DryRun: opts.Options.DryRun}
	_, err = softsync.Open(ctx, opts.Root, dir, true, detect)
	if err == nil {
		log.Info().Str("path", dir).Msg("No repair needed")
		return result, nil
	}

	var corrupt *softsync.CorruptError
	if !stderrors.As(err, &corrupt) {
		return nil, err
	}
	if err := corrupt.Context.Save(ctx); err != nil {
		return nil, err
	}
	result.Conflicts = corrupt.Conflicts

	log.Info().Str("path", dir).Int("dropped", len(corrupt.Conflicts)).Msg("Command finished")
	return result, nil
}
