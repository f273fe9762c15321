// Package cp implements the softsync cp workflow: duplicating entries as
// soft entries within one root, or syncing them onto a second root.
package cp

import (
	"context"
	"path"
	"time"

	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/matchers"
	"github.com/arthur-debert/softsync/pkg/paths"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/types"
)

// CopyOptions defines the options for the Copy command.
type CopyOptions struct {
	// Roots holds the source root and, for syncs, the destination root.
	Roots *root.Roots
	// Args are the path arguments, relative to the source root.
	Args []string
	// Options are passed to every context the command opens.
	Options softsync.Options
}

// Copy dupes when only a source root is given and syncs otherwise.
func Copy(ctx context.Context, opts CopyOptions) (*types.CopyResult, error) {
	log := logging.CommandLogger("cp")
	log.Debug().Strs("args", opts.Args).Msg("Executing command")

	if opts.Roots == nil || opts.Roots.Src == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no source root given")
	}

	var (
		result *types.CopyResult
		err    error
	)
	if opts.Roots.Dest == nil {
		done := logging.Timed(log, types.ModeDupe)
		result, err = dupe(ctx, opts)
		done(err)
	} else {
		done := logging.Timed(log, types.ModeSync)
		result, err = syncRoots(ctx, opts)
		done(err)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("mode", result.Mode).Int("files", len(result.Actions)).Msg("Command finished")
	return result, nil
}

func dupe(ctx context.Context, opts CopyOptions) (*types.CopyResult, error) {
	if len(opts.Args) != 2 {
		return nil, errors.New(errors.ErrInvalidInput, "root has source only, expected 'src' and 'dest' path args")
	}
	r := opts.Roots.Src

	srcDir, srcFile, err := paths.SplitPath(ctx, r.Scheme(), r.Path(), opts.Args[0])
	if err != nil {
		return nil, err
	}
	destDir, destFile, err := paths.SplitPath(ctx, r.Scheme(), r.Path(), opts.Args[1])
	if err != nil {
		return nil, err
	}
	if !paths.CheckDisjoint(srcDir, destDir) {
		return nil, errors.New(errors.ErrNotDisjoint, "'src' and 'dest' paths must be disjoint")
	}
	if destFile != "" && (paths.IsGlobPattern(srcFile) || paths.IsGlobPattern(destFile)) {
		return nil, errors.New(errors.ErrInvalidInput, "'dest' path must be a directory")
	}

	srcCtx, err := softsync.Open(ctx, r, srcDir, true, opts.Options)
	if err != nil {
		return nil, err
	}
	destCtx, err := softsync.Open(ctx, r, destDir, false, opts.Options)
	if err != nil {
		return nil, err
	}
	rel, err := srcCtx.RelativePathTo(destCtx)
	if err != nil {
		return nil, err
	}

	m, err := matchers.Pattern(srcFile)
	if err != nil {
		return nil, err
	}
	files := srcCtx.List(m)

	result := &types.CopyResult{Mode: types.ModeDupe, DryRun: opts.Options.DryRun, Timestamp: time.Now()}
	if len(files) == 0 {
		return result, nil
	}

	var namer softsync.Namer
	if destFile != "" {
		if len(files) != 1 {
			return nil, errors.New(errors.ErrInvalidInput, "multiple source files for single destination")
		}
		namer = softsync.AsName(destFile)
	}

	for _, f := range files {
		if err := destCtx.Dupe(f, rel, namer); err != nil {
			return nil, err
		}
		name := f.Name
		if namer != nil {
			name = namer(f.Name)
		}
		result.Actions = append(result.Actions, types.FileAction{
			Source: path.Join(srcDir, f.Name),
			Dest:   path.Join(destDir, name),
			Link:   path.Join(rel, f.Name),
		})
	}

	if err := destCtx.Save(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func syncRoots(ctx context.Context, opts CopyOptions) (*types.CopyResult, error) {
	if len(opts.Args) != 1 {
		return nil, errors.New(errors.ErrInvalidInput, "root has both source and destination, expected only 'src' path arg")
	}
	src, dest := opts.Roots.Src, opts.Roots.Dest

	dir, file, err := paths.SplitPath(ctx, src.Scheme(), src.Path(), opts.Args[0])
	if err != nil {
		return nil, err
	}

	srcCtx, err := softsync.Open(ctx, src, dir, true, opts.Options)
	if err != nil {
		return nil, err
	}
	destCtx, err := softsync.Open(ctx, dest, dir, false, opts.Options)
	if err != nil {
		return nil, err
	}

	m, err := matchers.Pattern(file)
	if err != nil {
		return nil, err
	}

	result := &types.CopyResult{Mode: types.ModeSync, DryRun: opts.Options.DryRun, Timestamp: time.Now()}
	cache := softsync.NewCache()
	for _, f := range srcCtx.List(m) {
		if err := srcCtx.SyncFile(ctx, f, destCtx, cache); err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, types.FileAction{
			Source: src.Abs(path.Join(dir, f.Name)),
			Dest:   dest.Abs(path.Join(dir, f.Name)),
		})
	}
	return result, nil
}
