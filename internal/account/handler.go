package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wallet-arc/wallet_arc/internal/money"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register handles account creation.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	acct, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user_id":         acct.ID,
		"name":            acct.Name,
		"email":           acct.Email,
		"wallet_key":      acct.WalletKey,
		"currency_symbol": acct.Currency,
	})
}

// Login verifies credentials.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	acct, err := h.service.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "authentication unavailable")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"user_id": acct.ID})
}

// Balance returns the account balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	acct, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "account lookup unavailable")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":         acct.ID,
		"balance":         money.FromMinorUnits(acct.Balance),
		"currency_symbol": acct.Currency,
	})
}

// Update applies a partial profile update.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	input := UpdateInput{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := h.service.UpdateProfile(c.UserContext(), id, input); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrDuplicateEmail):
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "profile update unavailable")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "profile updated"})
}

// ParseID extracts the numeric account id from the :id route parameter.
func ParseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(http.StatusBadRequest, "invalid account id")
	}
	return id, nil
}
