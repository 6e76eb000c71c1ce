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
	"github.com/segmentio/kafka-go"

	"github.com/wallet-arc/wallet_arc/internal/account"
	"github.com/wallet-arc/wallet_arc/internal/config"
	"github.com/wallet-arc/wallet_arc/internal/events"
	"github.com/wallet-arc/wallet_arc/internal/ledger"
	"github.com/wallet-arc/wallet_arc/internal/middleware"
	"github.com/wallet-arc/wallet_arc/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes. Cache and Kafka
// are optional; DB is not.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Kafka  *kafka.Writer
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.DB == nil {
		return fmt.Errorf("database is required")
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	accountRepo := account.NewPostgresRepository(d.DB)
	accountSvc := account.NewService(accountRepo, d.Cfg.Currency)
	accountHandler := account.NewHandler(accountSvc)

	store := ledger.NewPostgresStore(d.DB)
	var publisher events.Publisher
	if d.Kafka != nil {
		publisher = events.NewKafkaPublisher(d.Kafka)
	} else {
		publisher = events.NewLoggerPublisher(d.Logger)
	}
	transferSvc := transfer.NewService(store, publisher)
	transferHandler := transfer.NewHandler(transferSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterAccountRoutes(api, accountHandler)
	RegisterTransferRoutes(api, transferHandler)

	return nil
}
