package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/okian/sofirank/internal/adapters/cli"
	"github.com/okian/sofirank/internal/adapters/http/api"
	"github.com/okian/sofirank/internal/adapters/http/swagger"
	"github.com/okian/sofirank/internal/adapters/repository"
	service "github.com/okian/sofirank/internal/app"
	"github.com/okian/sofirank/internal/config"
	"github.com/okian/sofirank/internal/domain/ranking"
	"github.com/okian/sofirank/internal/sample"
	"github.com/okian/sofirank/pkg/logger"
	"github.com/okian/sofirank/pkg/metrics"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

// newService builds the query service from configuration.
func newService(cfg *config.Config, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithCatalogOptions(
			repository.WithPlayerBuckets(cfg.PlayerBuckets),
			repository.WithRatingBuckets(cfg.RatingBuckets),
			repository.WithUserBuckets(cfg.UserBuckets),
			repository.WithTrieBuckets(cfg.TrieBuckets),
		),
		service.WithRankerOptions(
			ranking.WithMinRatings(cfg.TopMinRatings),
			ranking.WithPersonalWeight(cfg.PersonalWeight),
		),
		service.WithUserResultLimit(cfg.UserResultLimit),
	}
	return service.New(append(base, opts...)...)
}

func loadDataset(ctx context.Context, svc *service.Service, cfg *config.Config) error {
	return svc.Load(ctx, cfg.PlayersPath(), cfg.RatingsPath(), cfg.TagsPath())
}

func newREPLCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Load the datasets and read queries from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			svc := newService(cfg, service.WithNotice(func(_ context.Context, msg string) {
				_, _ = fmt.Fprintln(out, msg)
			}))
			if err := loadDataset(ctx, svc, cfg); err != nil {
				logger.Get().Error(ctx, "failed to load datasets", logger.Error(err))
				return err
			}
			return cli.New(svc, cmd.InOrStdin(), out).Run(ctx)
		},
	}
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

// serve starts listening before the datasets are loaded; /healthz reports
// loading until they are.
func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	svc := newService(cfg)

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		if err := loadDataset(ctx, svc, cfg); err != nil {
			errCh <- fmt.Errorf("load datasets: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case runErr = <-errCh:
		log.Error(ctx, "server stopping on error", logger.Error(runErr))
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return runErr
}

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	gen := sample.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("dir") {
				gen.Dir = cfg.DataDir
			}
			stats, err := sample.Generate(cmd.Context(), gen)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d players, %d ratings, %d tags to %s\n",
				stats.PlayersWritten, stats.RatingsWritten, stats.TagsWritten, gen.Dir)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&gen.Dir, "dir", gen.Dir, "output directory (defaults to data_dir)")
	f.IntVar(&gen.Players, "players", gen.Players, "number of players")
	f.IntVar(&gen.Users, "users", gen.Users, "number of rating users")
	f.IntVar(&gen.RatingsPerUser, "ratings-per-user", gen.RatingsPerUser, "ratings given by each user")
	f.IntVar(&gen.TagsPerUser, "tags-per-user", gen.TagsPerUser, "tags applied by each user")
	f.Uint64Var(&gen.Seed, "seed", gen.Seed, "random seed")
	f.IntVar(&gen.Workers, "workers", gen.Workers, "generator goroutines")
	return cmd
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

