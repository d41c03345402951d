package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/moyo-bank/moyo_bank/internal/operation"
)

// RegisterOperationRoutes wires ledger-core endpoints onto the operations
// group. rateLimit applies to transfers only.
func RegisterOperationRoutes(r fiber.Router, h *operation.Handler, rateLimit fiber.Handler) {
	r.Post("/debit", h.Debit)
	r.Post("/credit", h.Credit)
	r.Post("/transfer", rateLimit, h.Transfer)
	r.Get("/account/:accountId", h.ListByAccount)
	r.Get("/:operationId", h.Get)
}
