package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/okian/discography/internal/adapters/http/api"
	"github.com/okian/discography/internal/adapters/http/swagger"
	"github.com/okian/discography/internal/adapters/repository"
	service "github.com/okian/discography/internal/app"
	"github.com/okian/discography/internal/config"
	"github.com/okian/discography/pkg/logger"
	"github.com/okian/discography/pkg/metrics"
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

// Command line flag names.
const (
	flagConfig   = "config"
	flagAddr     = "addr"
	flagSeedsDir = "seeds-dir"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed loading .env file: %s\n", err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "discography"
	app.Usage = "In-memory REST API over artists, albums and songs."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "path to a YAML config file",
			EnvVars: []string{config.EnvConfig},
		},
		&cli.StringFlag{
			Name:  flagAddr,
			Usage: "listen address, overrides the addr config key",
		},
		&cli.StringFlag{
			Name:  flagSeedsDir,
			Usage: "directory holding artists.json, albums.json and songs.json",
		},
	}
	app.Action = run
	return app
}

func run(c *cli.Context) error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env), then flags.
	cfg, err := config.Load(ctx, c.String(flagConfig))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet(flagAddr) {
		cfg.Addr = c.String(flagAddr)
	}
	if c.IsSet(flagSeedsDir) {
		cfg.SeedsDir = c.String(flagSeedsDir)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsBuckets),
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
	)

	handler, err := newHandler(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.MetricsEnabled {
		go startSystemMetricsUpdater(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newHandler seeds the store from cfg.SeedsDir and builds the router.
// The global logger must be initialized.
func newHandler(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	log := logger.Get()

	snapshot, err := repository.LoadSnapshotFromDir(cfg.SeedsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load seeds: %w", err)
	}
	seeded := snapshot.Counts()
	log.Info(ctx, "catalog seeded",
		logger.String("dir", cfg.SeedsDir),
		logger.Int("artists", seeded.Artists),
		logger.Int("albums", seeded.Albums),
		logger.Int("songs", seeded.Songs),
	)

	store := repository.NewMemoryStore(ctx, repository.WithSnapshot(snapshot))
	svc := service.New(store, service.WithLogger(log.Named("catalog")))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(api.RequestID)
	r.Use(api.RequestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)

	swagger.Register(ctx, r)
	api.NewServer(svc, svc, api.WithResolverLogger(log.Named("resolver"))).Register(ctx, r)
	return r, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
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

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
