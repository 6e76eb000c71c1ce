package transfer

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wallet-arc/wallet_arc/internal/account"
	"github.com/wallet-arc/wallet_arc/internal/ledger"
	"github.com/wallet-arc/wallet_arc/internal/money"
)

// Handler exposes deposit, transfer and history HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	RecipientID int64           `json:"recipient_id"`
	Amount      decimal.Decimal `json:"amount"`
}

type recordResponse struct {
	ID         int64           `json:"id"`
	SenderID   int64           `json:"sender_id"`
	ReceiverID int64           `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Deposit adds funds to the account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	id, err := account.ParseID(c)
	if err != nil {
		return err
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := money.ToMinorUnits(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}

	newBalance, err := h.service.Deposit(c.UserContext(), id, amount)
	if err != nil {
		return mutationError(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":     "funds deposited",
		"new_balance": money.FromMinorUnits(newBalance),
	})
}

// Transfer moves funds from the account to a recipient.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	senderID, err := account.ParseID(c)
	if err != nil {
		return err
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.RecipientID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid recipient id")
	}
	amount, err := money.ToMinorUnits(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	}

	newBalance, err := h.service.Transfer(c.UserContext(), senderID, req.RecipientID, amount)
	if err != nil {
		return mutationError(err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":            "funds transferred",
		"sender_new_balance": money.FromMinorUnits(newBalance),
	})
}

// History lists the account's transaction records, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	id, err := account.ParseID(c)
	if err != nil {
		return err
	}

	records, err := h.service.History(c.UserContext(), id)
	if err != nil {
		return mutationError(err)
	}

	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, recordResponse{
			ID:         r.ID,
			SenderID:   r.SenderID,
			ReceiverID: r.ReceiverID,
			Amount:     money.FromMinorUnits(r.Amount),
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}

func mutationError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrAborted):
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	}
	return fiber.NewError(http.StatusInternalServerError, "ledger unavailable")
}
