package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-tree-sync/internal/adapter"
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/internal/tui"
	"github.com/MKhiriev/go-tree-sync/internal/utils"
	"github.com/MKhiriev/go-tree-sync/models"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// exitError carries the exit code a command wants the process to end with.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// pullFlags are the command line switches of "sync pull".
type pullFlags struct {
	only       []string
	dryRun     bool
	force      bool
	full       bool
	configPath string
	parallel   int
}

// appFactory builds the pull application for a resolved config. Tests
// replace it to run the command against fakes.
type appFactory func(cfg *config.ClientConfig, in io.Reader, out io.Writer, log *logger.Logger) *App

func defaultAppFactory(cfg *config.ClientConfig, in io.Reader, out io.Writer, log *logger.Logger) *App {
	originAdapter := adapter.NewHTTPOriginAdapter(cfg.Adapter, cfg.App, log)
	storages := store.NewStorages(cfg.Storage, log)
	services := service.NewClientServices(storages, originAdapter, cfg.Storage, log)

	return NewApp(services, tui.New(in, out, log), cfg.Workers, log)
}

// NewRootCommand builds the "sync" command tree.
func NewRootCommand(info models.AppBuildInfo) *cobra.Command {
	return newRootCommand(info, defaultAppFactory)
}

func newRootCommand(info models.AppBuildInfo, build appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "sync",
		Short:         "Mirror directory trees from an origin server",
		Version:       info.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPullCommand(build), newVersionCommand(info, defaultOriginVersion))
	return root
}

func newPullCommand(build appFactory) *cobra.Command {
	var flags pullFlags

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Bring local roots in line with the origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPull(cmd, flags, build)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&flags.only, "only", nil, "comma separated root keys to pull (default: every configured root)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "show what would change without transferring anything")
	f.BoolVar(&flags.force, "force", false, "apply without asking for confirmation")
	f.BoolVar(&flags.full, "full", false, "replace every root with a full archive")
	f.StringVarP(&flags.configPath, "config", "c", "", "path to a JSON config file")
	f.IntVar(&flags.parallel, "parallel", 0, "number of roots applied at once")

	return cmd
}

func runPull(cmd *cobra.Command, flags pullFlags, build appFactory) error {
	overrides := &config.StructuredConfig{
		JSONFilePath: flags.configPath,
		Workers:      config.Workers{Parallelism: flags.parallel},
	}

	cfg, err := config.GetClientConfig(overrides)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}

	log := logger.NewClientLogger("tree-sync-puller", cfg.App.LogLevel)

	traceID := utils.NewUUIDGenerator().Generate()
	ctx := utils.WithTraceID(cmd.Context(), traceID)
	log.Debug().Str("trace_id", traceID).Str("origin", cfg.Adapter.BaseURL).Msg("starting pull")

	app := build(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	return pullWith(ctx, app, models.PullOptions{
		Keys:   flags.only,
		DryRun: flags.dryRun,
		Force:  flags.force,
		Full:   flags.full,
	})
}

func pullWith(ctx context.Context, app *App, opts models.PullOptions) error {
	report, err := app.Pull(ctx, opts)
	switch {
	case errors.Is(err, service.ErrConfiguration):
		return &exitError{code: ExitConfigError, err: err}
	case err != nil:
		return &exitError{code: ExitFailure, err: err}
	case report.Failed():
		return &exitError{code: ExitFailure, err: errors.New("one or more roots failed")}
	}
	return nil
}

// originVersionFunc asks the configured origin for its version.
type originVersionFunc func(ctx context.Context, cfg *config.ClientConfig) (string, error)

func defaultOriginVersion(ctx context.Context, cfg *config.ClientConfig) (string, error) {
	log := logger.NewClientLogger("tree-sync-puller", cfg.App.LogLevel)
	return adapter.NewHTTPOriginAdapter(cfg.Adapter, cfg.App, log).Version(ctx)
}

func newVersionCommand(info models.AppBuildInfo, originVersion originVersionFunc) *cobra.Command {
	var (
		withOrigin bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBuildInfo(info))
			if !withOrigin {
				return nil
			}

			cfg, err := config.GetClientConfig(&config.StructuredConfig{JSONFilePath: configPath})
			if err != nil {
				return &exitError{code: ExitConfigError, err: err}
			}

			version, err := originVersion(cmd.Context(), cfg)
			if err != nil {
				return &exitError{code: ExitFailure, err: fmt.Errorf("%w: %w", service.ErrTransport, err)}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Origin version: %s\n", version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withOrigin, "origin", false, "also ask the origin for its version")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a JSON config file")

	return cmd
}

// Execute runs the command tree with args and returns the process exit
// code. Errors are printed to stderr.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	// unknown flags and commands
	return ExitConfigError
}
