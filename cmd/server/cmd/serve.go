package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/prajayganiga-design/Mini-project/internal/api"
	"github.com/prajayganiga-design/Mini-project/internal/auth"
	"github.com/prajayganiga-design/Mini-project/internal/config"
	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
	"github.com/prajayganiga-design/Mini-project/internal/email"
	"github.com/prajayganiga-design/Mini-project/internal/metrics"
	"github.com/prajayganiga-design/Mini-project/internal/storage/postgres"
	"github.com/prajayganiga-design/Mini-project/internal/telemetry"
)

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the event registration HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Run pending database migrations
- Bootstrap an admin account if ADMIN_* env vars are set
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 3000)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting event registration server")

	metrics.Init(Version, GitCommit, BuildDate)

	tracingShutdown, err := telemetry.InitTracing(context.Background(), cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracingShutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	if err := postgres.MigrateUp(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	logger.Info().Msg("database migrations applied")

	poolCtx, poolCancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewPool(poolCtx, cfg.Database.URL)
	poolCancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	mailer, err := email.NewService(cfg.Email, logger)
	if err != nil {
		return fmt.Errorf("email init failed: %w", err)
	}
	var confirmations registrations.ConfirmationSender
	if mailer != nil {
		confirmations = mailer
	} else {
		logger.Info().Msg("no RESEND_API_KEY set, confirmation emails disabled")
	}

	eventsService := events.NewService(repo.Events(), logger)
	registrationsService := registrations.NewService(repo.Registrations(), confirmations, logger)
	accountsService := accounts.NewService(repo.Accounts(), jwtManager, logger)

	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	bootstrapAdminAccount(bootstrapCtx, cfg, accountsService, logger)
	bootstrapCancel()

	router := api.NewRouter(cfg, api.Deps{
		Events:        eventsService,
		Registrations: registrationsService,
		Accounts:      accountsService,
		JWT:           jwtManager,
		Pool:          pool,
	}, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

// bootstrapAdminAccount creates the initial admin when ADMIN_EMAIL and
// ADMIN_PASSWORD are set. Failures are logged, not fatal: an existing
// deployment already has its admin.
func bootstrapAdminAccount(ctx context.Context, cfg config.Config, svc *accounts.Service, logger zerolog.Logger) {
	bootstrap := cfg.AdminBootstrap
	if bootstrap.Email == "" || bootstrap.Password == "" {
		logger.Warn().Msg("admin bootstrap env vars not fully set; skipping")
		return
	}

	_, err := svc.Register(ctx, bootstrap.Email, bootstrap.Password, string(auth.RoleAdmin))
	switch {
	case err == nil:
		logger.Info().Str("email", bootstrap.Email).Msg("bootstrapped admin account")
	case errors.Is(err, accounts.ErrEmailTaken):
		// Already bootstrapped on a previous start.
	default:
		logger.Error().Err(err).Msg("admin bootstrap failed")
	}
}
