package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dailyjournal/internal/config"
	"github.com/dailyjournal/internal/db"
	"github.com/dailyjournal/internal/handler"
	"github.com/dailyjournal/internal/logging"
	"github.com/dailyjournal/internal/metrics"
	"github.com/dailyjournal/internal/router"
	"github.com/dailyjournal/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Daily Journal blog server",
	Long:          "Serves the blog: connects to the content store, seeds the default pages and listens for HTTP requests.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default Home, About and Contact pages if none exist",
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, installs the logger and connects the store.
func bootstrap(ctx context.Context) (config.AppConfig, *slog.Logger, *db.Store, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.AppConfig{}, nil, nil, err
	}
	cfg := config.Load()

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	store, err := db.Open(connectCtx, db.Options{
		Driver:       cfg.StoreDriver,
		DatabasePath: cfg.DatabasePath,
		MongoURI:     cfg.MongoURI,
		DatabaseName: cfg.DatabaseName,
	})
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("connect to store: %w", err)
	}
	logger.Info("store connected", "driver", store.Driver())
	return cfg, logger, store, nil
}

func seed(ctx context.Context, cfg config.AppConfig, logger *slog.Logger, store *db.Store) (service.SeedResult, error) {
	defaults, err := service.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		return service.SeedResult{}, err
	}
	return service.NewSeeder(store.InfoPages, defaults, logger).Seed(ctx)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, logger, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	result, err := seed(ctx, cfg, logger, store)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d info pages\n", result.Inserted)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	m := metrics.New()
	result, err := seed(ctx, cfg, logger, store)
	if err != nil {
		return fmt.Errorf("seed info pages: %w", err)
	}
	m.PagesSeeded(result.Inserted)

	gin.SetMode(cfg.GinMode)
	engine, err := router.SetupRouter(handler.NewAPI(store, m, logger), router.Options{
		SessionSecret: cfg.SessionSecret,
		SecureSSL:     cfg.SecureSSL,
		Logger:        logger,
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           gzhttp.GzipHandler(engine),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
