// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and applies the
// authentication and role middleware.
package routes

import (
	"time"

	"tally/internal/handlers"
	"tally/internal/middleware"
	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/services/account"
	"tally/internal/services/auth"
	"tally/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// Mutating wallet endpoints require an admin key; read endpoints accept
// any active key (service or admin).
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	ledgerRepo := repositories.NewLedgerRepository(db)
	apiKeyRepo := repositories.NewAPIKeyRepository(db)

	// Assign the cache only when the global is set: a typed-nil interface
	// would pass the services' nil checks and panic on first use.
	var walletCache wallet.Cache
	var accountCache account.Cache
	if repositories.CacheService != nil {
		walletCache = repositories.CacheService
		accountCache = repositories.CacheService
	}

	authService := auth.NewService(apiKeyRepo)
	walletService := wallet.NewService(ledgerRepo, walletCache, nil)
	accountService := account.NewService(ledgerRepo, accountCache)

	walletHandler := handlers.NewWalletHandler(walletService)
	accountHandler := handlers.NewAccountHandler(accountService)

	app.Get("/health", handlers.HealthCheck)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	api := app.Group("/api", authMiddleware.Handler)

	accounts := api.Group("/accounts")
	accounts.Get("/", middleware.RequireRole(models.APIKeyRoleService), accountHandler.ListAccounts)
	accounts.Get("/:id", middleware.RequireRole(models.APIKeyRoleService), accountHandler.GetAccount)
	accounts.Get("/:id/transactions", middleware.RequireRole(models.APIKeyRoleService), accountHandler.ListTransactions)

	api.Get("/transactions/:id", middleware.RequireRole(models.APIKeyRoleService), accountHandler.GetTransaction)

	// Balance mutations are admin-only and rate limited per client.
	mutationLimiter := limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get(middleware.APIKeyHeader, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
	accounts.Post("/:id/credit", middleware.RequireRole(models.APIKeyRoleAdmin), mutationLimiter, walletHandler.CreditAccount)
	accounts.Post("/:id/debit", middleware.RequireRole(models.APIKeyRoleAdmin), mutationLimiter, walletHandler.DebitAccount)
}
