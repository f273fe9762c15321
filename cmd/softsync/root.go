package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/softsync/internal/version"
	"github.com/arthur-debert/softsync/pkg/config"
	"github.com/arthur-debert/softsync/pkg/errors"
	"github.com/arthur-debert/softsync/pkg/logging"
	"github.com/arthur-debert/softsync/pkg/root"
	"github.com/arthur-debert/softsync/pkg/softsync"
	"github.com/arthur-debert/softsync/pkg/storage"
	s3store "github.com/arthur-debert/softsync/pkg/storage/s3"
	"github.com/arthur-debert/softsync/pkg/ui"
)

// registryBuilder returns the schemes available to root specs.
type registryBuilder func(ctx context.Context, cfg *config.Config) (*storage.Registry, error)

type app struct {
	verbosity  int
	dryRun     bool
	force      bool
	configPath string
	rootSpec   string
	output     string

	buildRegistry registryBuilder
	cfg           *config.Loaded
	registry      *storage.Registry
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(buildRegistry)
}

func newRootCmd(build registryBuilder) *cobra.Command {
	a := &app{buildRegistry: build}

	rootCmd := &cobra.Command{
		Use:     "softsync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&a.force, "force", "f", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.rootSpec, "root", "R", ".", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "", MsgFlagOutput)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid flags")
	})

	rootCmd.AddCommand(newCpCmd(a))
	rootCmd.AddCommand(newRepairCmd(a))
	rootCmd.AddCommand(newLsCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	reg, err := a.buildRegistry(ctx, cfg.Config)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.registry = reg
	log.Debug().Str("config", cfg.Source).Strs("schemes", reg.Schemes()).Msg("Registry ready")
	return nil
}

// buildRegistry registers the s3 scheme on top of the defaults when enabled.
func buildRegistry(ctx context.Context, cfg *config.Config) (*storage.Registry, error) {
	reg := storage.DefaultRegistry()
	if !cfg.S3.Enabled {
		return reg, nil
	}
	client, err := s3store.NewClient(ctx, s3store.ClientOptions{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		PathStyle: cfg.S3.PathStyle,
		Profile:   cfg.S3.Profile,
	})
	if err != nil {
		return nil, err
	}
	if err := s3store.Register(reg, client); err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *app) options() softsync.Options {
	return softsync.Options{
		Force:       a.force,
		DryRun:      a.dryRun,
		Verbose:     a.verbosity > 0,
		Symbolic:    a.cfg.Sync.Symbolic,
		Reconstruct: a.cfg.Sync.Reconstruct,
	}
}

// singleRoot parses -R for commands that work on one root only.
func (a *app) singleRoot(ctx context.Context) (*root.Root, error) {
	roots, err := root.ParseRoots(ctx, a.registry, a.rootSpec)
	if err != nil {
		return nil, err
	}
	if roots.Dest != nil {
		return nil, errors.Newf(errors.ErrInvalidRoot, MsgErrSingleRoot, a.rootSpec)
	}
	return roots.Src, nil
}

func (a *app) format() (ui.Format, error) {
	name := a.output
	if name == "" {
		name = a.cfg.Output.Format
	}
	return ui.ParseFormat(name)
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	format, err := a.format()
	if err != nil {
		return err
	}
	r, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

// usageArgs turns cobra's argument errors into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrInvalidInput, "invalid arguments")
		}
		return nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "softsync version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
