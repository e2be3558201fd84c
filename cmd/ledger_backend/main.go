package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/domain"
	portsrepo "github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/ports/repositories"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/core/services"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/handlers"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/middleware"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/platform/config"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/repositories/database/memory"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/repositories/database/pgsql"
	"github.com/ledgerlite57-code/ledgerlite-sub002/internal/utils"
	"github.com/ledgerlite57-code/ledgerlite-sub002/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Ledger Posting Engine API
// @version 1.0
// @description Multi-tenant double-entry posting and reversal engine.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var repos portsrepo.RepositoryProvider
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		seedMemoryStore(store)
		repos = store.Provider()
		logger.Warn("Using in-memory store; data is lost on restart")
	default:
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		if err := runMigrations(logger, cfg); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	}

	serviceContainer := services.NewServiceContainer(repos)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.IdempotentReplayedHeader, middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies every pending "up" migration through a short-lived
// database/sql connection on the pgx stdlib driver.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	// Check for dirty migrations after running Up.
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedMemoryStore creates a demo organization with a minimal chart of accounts
// so the in-memory driver is usable straight away.
func seedMemoryStore(store *memory.Store) {
	const orgID = "demo"
	store.PutOrganization(domain.Organization{OrgID: orgID, Name: "Demo Organization", BaseCurrency: "USD"})
	for _, acct := range []domain.Account{
		{AccountID: "demo-bank", Code: "1000", Name: "Bank", AccountType: domain.Asset, Subtype: domain.SubtypeBank},
		{AccountID: "demo-ar", Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, Subtype: domain.SubtypeAccountsReceivable},
		{AccountID: "demo-ap", Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, Subtype: domain.SubtypeAccountsPayable},
		{AccountID: "demo-oba", Code: "3900", Name: "Opening Balance Adjustment", AccountType: domain.Equity, Subtype: domain.SubtypeOpeningBalanceAdjustment},
		{AccountID: "demo-sales", Code: "4000", Name: "Sales", AccountType: domain.Revenue, Subtype: domain.SubtypeSales},
		{AccountID: "demo-expense", Code: "5000", Name: "General Expense", AccountType: domain.Expense, Subtype: domain.SubtypeExpense},
	} {
		acct.OrgID = orgID
		acct.IsActive = true
		store.PutAccount(acct)
	}
}
