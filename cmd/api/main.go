package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loyalty-token-ledger/config"
	httpHandler "loyalty-token-ledger/internal/adapter/http/handler"
	pgStorage "loyalty-token-ledger/internal/adapter/storage/postgres"
	redisStorage "loyalty-token-ledger/internal/adapter/storage/redis"
	"loyalty-token-ledger/internal/core/domain"
	"loyalty-token-ledger/internal/core/ports"
	"loyalty-token-ledger/internal/service"
	"loyalty-token-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Loyalty Token Ledger")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories and event sinks
	accountRepo := pgStorage.NewAccountRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	var journal *pgStorage.EventJournal
	var sinks []ports.EventSink
	if cfg.Events.Journal {
		journal = pgStorage.NewEventJournal(pool, transactor)
		sinks = append(sinks, journal)
	}
	if cfg.Events.Channel != "" {
		sinks = append(sinks, redisStorage.NewEventPublisher(rdb, cfg.Events.Channel))
	}

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(accountRepo, hashSvc, tokenSvc)

	// Resolve the program's initial identities
	deployer, initialAdmin, err := resolveIdentities(cfg.Ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ledger configuration")
	}

	loyaltySvc, err := service.NewLoyaltyService(deployer, initialAdmin, log, sinks...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize loyalty program")
	}

	// Initialize rate limit store and health checkers
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	deps := httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LoyaltySvc:     loyaltySvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	}
	if journal != nil {
		deps.Journal = journal
	}
	router := httpHandler.SetupRouter(deps)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// resolveIdentities parses the deployer and optional administrator addresses.
// When admin_address is unset the deployer becomes the administrator and
// also receives the merchant role.
func resolveIdentities(cfg config.LedgerConfig) (deployer, admin domain.Address, err error) {
	if cfg.DeployerAddress != "" {
		deployer, err = domain.AddressFromHex(cfg.DeployerAddress)
		if err != nil {
			return domain.ZeroAddress, domain.ZeroAddress, fmt.Errorf("ledger.deployer_address: %w", err)
		}
	}
	if cfg.AdminAddress != "" {
		admin, err = domain.AddressFromHex(cfg.AdminAddress)
		if err != nil {
			return domain.ZeroAddress, domain.ZeroAddress, fmt.Errorf("ledger.admin_address: %w", err)
		}
	}
	if deployer.IsZero() && admin.IsZero() {
		return domain.ZeroAddress, domain.ZeroAddress,
			fmt.Errorf("ledger.deployer_address or ledger.admin_address must be set")
	}
	if deployer.IsZero() {
		// Explicit admin with no deployer: the admin is the initializing identity.
		deployer = admin
	}
	return deployer, admin, nil
}
