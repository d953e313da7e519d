package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/cache"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/controller"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/middleware"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/http/router"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/identity"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/payment"
	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/implementations"
	"github.com/api-sage/cfc-rewards/src/internal/config"
	"github.com/api-sage/cfc-rewards/src/internal/jobs"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/api-sage/cfc-rewards/src/internal/usecase/services"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const (
	referralCodeCacheTTL = 24 * time.Hour
	gatewayLatency       = 150 * time.Millisecond
	shutdownTimeout      = 15 * time.Second
	rateLimitSweepSpec   = "@every 5m"
)

func serveCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the subscription expiry scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Init(cfg.LogLevel); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending migrations")
	return cmd
}

func runServer(ctx context.Context, cfg config.Config, skipMigrations bool) error {
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.OpenWithRetry(startupCtx, cfg.DatabaseDSN, 5, time.Second)
	if err != nil {
		return err
	}
	defer db.Close()

	if !skipMigrations {
		if err := implementations.Migrate(startupCtx, db, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	codes, closeCache := referralCodeCache(startupCtx, cfg)
	defer closeCache()

	userRepo := implementations.NewUserRepository(db)
	ledgerRepo := implementations.NewLedgerRepository(db)
	subscriptionRepo := implementations.NewSubscriptionRepository(db)
	transactionRepo := implementations.NewTransactionRepository(db)
	withdrawalRepo := implementations.NewWithdrawalRepository(db)
	referralRepo := implementations.NewReferralRepository(db)

	tokens := identity.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	gateway := payment.NewBreakerGateway(payment.NewSimulatedGateway(gatewayLatency), payment.BreakerSettings{})

	authService := services.NewAuthService(userRepo, tokens, codes, cfg.Program)
	subscriptionService := services.NewSubscriptionService(userRepo, subscriptionRepo, ledgerRepo, gateway, codes, cfg.Program)
	walletService := services.NewWalletService(userRepo, transactionRepo, withdrawalRepo, cfg.Program)
	withdrawalService := services.NewWithdrawalService(withdrawalRepo)
	kycService := services.NewKYCService(userRepo)
	dashboardService := services.NewDashboardService(userRepo, referralRepo, subscriptionRepo, cfg.Program, cfg.PublicBaseURL)
	programService := services.NewProgramService(cfg.Program)
	ledgerService := services.NewLedgerService(ledgerRepo)

	limiter := middleware.NewRateLimiter(float64(cfg.AuthRatePerSecond), cfg.AuthRateBurst)

	handler := router.New(router.Controllers{
		Auth:         controller.NewAuthController(authService),
		Program:      controller.NewProgramController(programService, db),
		Profile:      controller.NewProfileController(authService, dashboardService, kycService),
		Subscription: controller.NewSubscriptionController(subscriptionService),
		Wallet:       controller.NewWalletController(walletService),
		Admin:        controller.NewAdminController(withdrawalService, kycService, ledgerService),
	}, router.Middlewares{
		RateLimit: limiter.Handler,
		Bearer:    middleware.BearerAuth(tokens),
		Admin:     middleware.BasicAuth(cfg.AdminChannelID, cfg.AdminChannelKey),
	})

	scheduler := jobs.NewScheduler(0)
	if err := scheduler.Register(cfg.ExpiryCron, "expire-subscriptions", jobs.ExpireSubscriptions(subscriptionService, nil)); err != nil {
		return err
	}
	if err := scheduler.Register(rateLimitSweepSpec, "sweep-rate-limiter", jobs.SweepRateLimiter(limiter)); err != nil {
		return err
	}
	scheduler.Start()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", logger.Fields{
			"addr": cfg.HTTPAddr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			_ = scheduler.Stop(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received", nil)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", err, nil)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown failed", err, nil)
	}

	logger.Info("server stopped", nil)
	return nil
}

// referralCodeCache connects to redis when configured and falls back to no caching.
func referralCodeCache(ctx context.Context, cfg config.Config) (cache.ReferralCodeCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NoopReferralCodeCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, referral code cache disabled", logger.Fields{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
		_ = client.Close()
		return cache.NoopReferralCodeCache{}, func() {}
	}

	return cache.NewRedisReferralCodeCache(client, referralCodeCacheTTL), func() { _ = client.Close() }
}
