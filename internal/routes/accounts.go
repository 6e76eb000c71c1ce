package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-arc/wallet_arc/internal/account"
)

// RegisterAccountRoutes wires account lifecycle endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/users", h.Register)
	r.Post("/users/login", h.Login)
	r.Get("/users/:id/balance", h.Balance)
	r.Put("/users/:id", h.Update)
}
