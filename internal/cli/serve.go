package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/rockymountnc/licensetracker/internal/cache"
	"github.com/rockymountnc/licensetracker/internal/config"
	"github.com/rockymountnc/licensetracker/internal/handlers"
	"github.com/rockymountnc/licensetracker/internal/logging"
	"github.com/rockymountnc/licensetracker/internal/middleware"
	"github.com/rockymountnc/licensetracker/internal/repository"
	"github.com/rockymountnc/licensetracker/internal/server"
	"github.com/rockymountnc/licensetracker/internal/service"
	"github.com/rockymountnc/licensetracker/pkg/tokens"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the license tracker API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("licensetracker"))
	logging.SetDefault(logger)

	slog.Info("Starting license tracker service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)

	repo, cleanup, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			slog.Warn("Redis unreachable, response cache disabled", slog.String("error", err.Error()))
			redisClient = nil
		} else {
			slog.Info("Response cache enabled", slog.String("url", cfg.Redis.URL))
		}
	}
	respCache := cache.New(redisClient, cfg.Redis.CacheTTL)

	authority := tokens.NewAuthority(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), repo)

	authService := service.NewAuthService(repo, authority)
	softwareService := service.NewSoftwareService(repo)
	commentService := service.NewCommentService(repo)
	catalogService := service.NewCatalogService(repo)

	authMW := middleware.NewAuthMiddleware(authService)
	router := server.NewRouter(server.Handlers{
		Auth:     handlers.NewAuthHandler(authService, logger),
		Software: handlers.NewSoftwareHandler(softwareService),
		Comment:  handlers.NewCommentHandler(commentService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
	}, authMW, respCache, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("License tracker listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server stopped gracefully")
	return nil
}

// openRepository connects to the configured store and runs migrations for
// the persistent one. The returned cleanup is always safe to call.
func openRepository(cfg *config.Config) (repository.Repository, func(), error) {
	if cfg.Database.InMemory {
		slog.Warn("Using in-memory repository (development only)")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	connString := cfg.Database.Postgres.ConnString()
	slog.Info("Connecting to PostgreSQL",
		slog.String("host", cfg.Database.Postgres.Host),
		slog.Int("port", cfg.Database.Postgres.Port),
		slog.String("database", cfg.Database.Postgres.Database),
	)

	repo, err := repository.NewPostgresRepository(context.Background(), connString)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	slog.Info("Running database migrations")
	m, err := migrate.New("file://migrations", connString)
	if err != nil {
		repo.Close()
		return nil, func() {}, fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		repo.Close()
		return nil, func() {}, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		slog.Warn("Could not get migration version", slog.String("error", err.Error()))
	} else {
		slog.Info("Database migration complete",
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
	}

	return repo, repo.Close, nil
}
