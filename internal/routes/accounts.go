package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moyo-bank/moyo_bank/internal/account"
)

// RegisterAccountRoutes wires account directory endpoints. The static
// /accounts/customer path must be registered before the :accountId routes.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts/current", h.CreateCurrent)
	r.Post("/accounts/saving", h.CreateSaving)
	r.Get("/accounts", h.List)
	r.Get("/accounts/customer/:customerId", h.ListByCustomer)
	r.Get("/accounts/:accountId", h.Get)
	r.Put("/accounts/:accountId", h.Update)
}
