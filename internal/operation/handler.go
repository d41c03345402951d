package operation

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes ledger-core HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an operation HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type movementRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description"`
}

// Debit withdraws from an account.
func (h *Handler) Debit(c *fiber.Ctx) error {
	var req movementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	op, err := h.service.Debit(c.UserContext(), req.AccountID, req.Amount, req.Description)
	if err != nil {
		return mapOperationError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(op)
}

// Credit deposits into an account.
func (h *Handler) Credit(c *fiber.Ctx) error {
	var req movementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	op, err := h.service.Credit(c.UserContext(), req.AccountID, req.Amount, req.Description)
	if err != nil {
		return mapOperationError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(op)
}

// Transfer moves funds between two accounts.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.Transfer(c.UserContext(), req.SourceAccountID, req.DestinationAccountID, req.Amount, req.Description)
	if err != nil {
		return mapOperationError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(receipt)
}

// Get returns a journal entry by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	op, err := h.service.GetOperation(c.UserContext(), c.Params("operationId"))
	if err != nil {
		return mapOperationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(op)
}

// ListByAccount returns all journal entries for an account.
func (h *Handler) ListByAccount(c *fiber.Ctx) error {
	ops, err := h.service.ListByAccount(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return mapOperationError(c, err)
	}
	if ops == nil {
		ops = []Operation{}
	}
	return c.Status(http.StatusOK).JSON(ops)
}

// History returns the paginated history view for an account.
func (h *Handler) History(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 0)
	view, err := h.service.History(c.UserContext(), c.Params("accountId"), page, size)
	if err != nil {
		return mapOperationError(c, err)
	}
	return c.Status(http.StatusOK).JSON(view)
}

// mapOperationError converts ledger-core failures to distinct HTTP signals so
// callers can branch on them.
func mapOperationError(c *fiber.Ctx, err error) error {
	var partial *PartialTransferError
	if errors.As(err, &partial) {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":              "partial transfer failure",
			"transfer_id":        partial.TransferID,
			"debit_operation_id": partial.DebitOperationID,
			"cause":              partial.Err.Error(),
		})
	}

	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrOperationNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAccountNotActive):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDirectoryUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
