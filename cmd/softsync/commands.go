package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/softsync/pkg/commands/cp"
	"github.com/arthur-debert/softsync/pkg/commands/list"
	"github.com/arthur-debert/softsync/pkg/commands/repair"
	"github.com/arthur-debert/softsync/pkg/root"
)

func newCpCmd(a *app) *cobra.Command {
	var symbolic, reconstruct bool

	cmd := &cobra.Command{
		Use:     "cp <src> [<dest>]",
		Short:   MsgCpShort,
		Long:    MsgCpLong,
		Example: MsgCpExample,
		Args:    usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			roots, err := root.ParseRoots(ctx, a.registry, a.rootSpec)
			if err != nil {
				return err
			}

			opts := a.options()
			if cmd.Flags().Changed("symbolic") {
				opts.Symbolic = symbolic
			}
			if cmd.Flags().Changed("reconstruct") {
				opts.Reconstruct = reconstruct
			}

			result, err := cp.Copy(ctx, cp.CopyOptions{Roots: roots, Args: args, Options: opts})
			if err != nil {
				return err
			}

			// Successful copies are quiet unless asked to report.
			format, err := a.format()
			if err != nil {
				return err
			}
			if opts.Verbose || opts.DryRun || format.Machine() {
				return a.render(cmd, result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&symbolic, "symbolic", "s", false, MsgFlagSymbolic)
	cmd.Flags().BoolVar(&reconstruct, "reconstruct", false, MsgFlagReconstruct)
	return cmd
}

func newRepairCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repair <dir>",
		Short: MsgRepairShort,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.singleRoot(ctx)
			if err != nil {
				return err
			}
			result, err := repair.Repair(ctx, repair.RepairOptions{Root: r, Path: args[0], Options: a.options()})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [path]",
		Aliases: []string{"list"},
		Short:   MsgLsShort,
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.singleRoot(ctx)
			if err != nil {
				return err
			}
			p := "."
			if len(args) == 1 {
				p = args[0]
			}
			result, err := list.List(ctx, list.ListOptions{Root: r, Path: p, Options: a.options()})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.TOML()
			if err != nil {
				return err
			}
			if a.cfg.Source != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", a.cfg.Source)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}
