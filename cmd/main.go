// Command sofirank loads the SoFIFA players, ratings and tags datasets into
// memory and answers queries over them from an interactive shell or HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/sofirank/internal/config"
	"github.com/okian/sofirank/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the bare command opens the
// shell.
func newRootCmd() *cobra.Command {
	cfg := config.New()

	root := &cobra.Command{
		Use:          "sofirank",
		Short:        "Query SoFIFA player ratings from an in-memory index",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}
	repl := newREPLCmd(cfg)
	root.RunE = repl.RunE
	root.AddCommand(repl, newServeCmd(cfg), newGenerateCmd(cfg))
	return root
}

// setup loads configuration (defaults -> optional file -> env) and applies
// its logging settings.
func setup(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}
