package customer

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes customer HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a customer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type customerRequest struct {
	NationalID  string `json:"national_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
}

type customerResponse struct {
	ID          string     `json:"id"`
	NationalID  string     `json:"national_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Nationality string     `json:"nationality"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Create registers a new customer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	created, err := h.service.Create(c.UserContext(), req.toInput())
	if err != nil {
		return mapCustomerError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(created))
}

// Get returns a customer by id.
func (h *Handler) Get(c *fiber.Ctx) error {
	found, err := h.service.Get(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return mapCustomerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(found))
}

// Update replaces a customer's details.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.service.Update(c.UserContext(), c.Params("customerId"), req.toInput())
	if err != nil {
		return mapCustomerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(updated))
}

// Delete removes a customer.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("customerId")); err != nil {
		return mapCustomerError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// FindByNationalID returns the customer holding the given identity card number.
func (h *Handler) FindByNationalID(c *fiber.Ctx) error {
	found, err := h.service.FindByNationalID(c.UserContext(), c.Params("nationalId"))
	if err != nil {
		return mapCustomerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(found))
}

// List returns all customers, optionally filtered by the search query param.
func (h *Handler) List(c *fiber.Ctx) error {
	customers, err := h.service.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return mapCustomerError(err)
	}
	out := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toResponse(cust))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func (r customerRequest) toInput() Input {
	return Input{
		NationalID:  r.NationalID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Nationality: r.Nationality,
	}
}

func toResponse(c Customer) customerResponse {
	resp := customerResponse{
		ID:          c.ID,
		NationalID:  c.NationalID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Nationality: c.Nationality,
		CreatedAt:   c.CreatedAt,
	}
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

func mapCustomerError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNationalIDTaken), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrPhoneTaken):
		return fiber.NewError(http.StatusConflict, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
