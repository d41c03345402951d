package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moyo-bank/moyo_bank/internal/customer"
)

// RegisterCustomerRoutes wires customer registry endpoints.
func RegisterCustomerRoutes(r fiber.Router, h *customer.Handler) {
	r.Post("/customers", h.Create)
	r.Get("/customers", h.List)
	r.Get("/customers/national-id/:nationalId", h.FindByNationalID)
	r.Get("/customers/:customerId", h.Get)
	r.Put("/customers/:customerId", h.Update)
	r.Delete("/customers/:customerId", h.Delete)
}
