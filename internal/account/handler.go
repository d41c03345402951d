package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createCurrentRequest struct {
	CustomerID     string          `json:"customer_id"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
}

type createSavingRequest struct {
	CustomerID     string          `json:"customer_id"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

type updateRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Status  string          `json:"status"`
}

type accountResponse struct {
	ID             string          `json:"id"`
	Kind           string          `json:"kind"`
	Balance        decimal.Decimal `json:"balance"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	CustomerID     string          `json:"customer_id"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit,omitempty"`
	InterestRate   decimal.Decimal `json:"interest_rate,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// CreateCurrent opens a current account.
func (h *Handler) CreateCurrent(c *fiber.Ctx) error {
	var req createCurrentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.CreateCurrent(c.UserContext(), CurrentInput{
		CustomerID:     req.CustomerID,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
		OverdraftLimit: req.OverdraftLimit,
	})
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusCreated).JSON(toAccountResponse(created))
}

// CreateSaving opens a saving account.
func (h *Handler) CreateSaving(c *fiber.Ctx) error {
	var req createSavingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.CreateSaving(c.UserContext(), SavingInput{
		CustomerID:     req.CustomerID,
		Currency:       req.Currency,
		InitialBalance: req.InitialBalance,
		InterestRate:   req.InterestRate,
	})
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusCreated).JSON(toAccountResponse(created))
}

// Get returns an account by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	found, err := h.service.Get(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusOK).JSON(toAccountResponse(found))
}

// List returns all accounts.
func (h *Handler) List(c *fiber.Ctx) error {
	accounts, err := h.service.List(c.UserContext())
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusOK).JSON(toAccountResponses(accounts))
}

// ListByCustomer returns all accounts owned by a customer.
func (h *Handler) ListByCustomer(c *fiber.Ctx) error {
	accounts, err := h.service.ListByCustomer(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusOK).JSON(toAccountResponses(accounts))
}

// Update applies a full-field balance/status update.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Status != StatusActive && req.Status != StatusSuspended {
		return fiber.NewError(http.StatusBadRequest, "status must be ACTIVE or SUSPENDED")
	}
	updated, err := h.service.ApplyUpdate(c.UserContext(), c.Params("accountId"), Update{Balance: req.Balance, Status: req.Status})
	if err != nil {
		return mapAccountError(err)
	}
	return c.Status(http.StatusOK).JSON(toAccountResponse(updated))
}

func toAccountResponse(a Account) accountResponse {
	resp := accountResponse{
		ID:             a.ID,
		Kind:           string(a.Kind),
		Balance:        a.Balance,
		Currency:       a.Currency,
		Status:         a.Status,
		CustomerID:     a.CustomerID,
		OverdraftLimit: a.OverdraftLimit,
		InterestRate:   a.InterestRate,
		CreatedAt:      a.CreatedAt,
	}
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

func toAccountResponses(accounts []Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func mapAccountError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrCustomerNotFound):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownKind):
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
