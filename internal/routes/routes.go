package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/moyo-bank/moyo_bank/internal/account"
	"github.com/moyo-bank/moyo_bank/internal/config"
	"github.com/moyo-bank/moyo_bank/internal/customer"
	"github.com/moyo-bank/moyo_bank/internal/directory"
	"github.com/moyo-bank/moyo_bank/internal/logging"
	"github.com/moyo-bank/moyo_bank/internal/middleware"
	"github.com/moyo-bank/moyo_bank/internal/operation"
)

const transfersPerMinute = 10

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Storage backends: Postgres when configured, memory otherwise (dev).
	var (
		customerRepo customer.Repository
		accountRepo  account.Repository
		journal      operation.Journal
	)
	if d.DB != nil {
		customerRepo = customer.NewPostgresRepository(d.DB)
		accountRepo = account.NewPostgresRepository(d.DB)
		journal = operation.NewPostgresJournal(d.DB)
	} else {
		customerRepo = customer.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
		journal = operation.NewMemoryJournal()
	}

	customerSvc := customer.NewService(customerRepo, logging.ForComponent(d.Logger, "customer"))
	accountSvc := account.NewService(accountRepo, customerSvc, logging.ForComponent(d.Logger, "account"))

	// The ledger core only sees the directory boundary. With a remote URL it
	// talks HTTP to an external account directory; otherwise it calls the
	// in-process account service.
	var dir directory.Directory
	if d.Cfg.DirectoryURL != "" {
		dir = directory.NewHTTPDirectory(d.Cfg.DirectoryURL, d.Cfg.DirectoryTimeout)
	} else {
		dir = directory.NewLocalDirectory(accountSvc)
	}

	operationSvc := operation.NewService(dir, journal, logging.ForComponent(d.Logger, "operation"), d.Cfg.HistoryPageSize)
	operationHandler := operation.NewHandler(operationSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterCustomerRoutes(api, customer.NewHandler(customerSvc))
	RegisterAccountRoutes(api, account.NewHandler(accountSvc))

	ops := api.Group("/operations")
	if d.Cache != nil {
		ops.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterOperationRoutes(ops, operationHandler, middleware.TransferRateLimit(d.Cache, transfersPerMinute))

	api.Get("/accounts/:accountId/history", operationHandler.History)

	return nil
}
