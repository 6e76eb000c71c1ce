package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-arc/wallet_arc/internal/transfer"
)

// RegisterTransferRoutes wires balance-mutation endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/users/:id/deposit", h.Deposit)
	r.Post("/users/:id/transfer", h.Transfer)
	r.Get("/users/:id/transactions", h.History)
}
