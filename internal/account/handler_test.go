package account

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func newTestApp() *fiber.App {
	svc := NewService(NewMemoryRepository(), "ARC")
	h := NewHandler(svc)

	app := fiber.New()
	app.Post("/users", h.Register)
	app.Post("/users/login", h.Login)
	app.Get("/users/:id/balance", h.Balance)
	app.Put("/users/:id", h.Update)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		payload = nil
	}
	return resp.StatusCode, payload
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp()

	status, payload := doJSON(t, app, fiber.MethodPost, "/users",
		`{"name":"Ada","email":"ada@example.com","password":"secret"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 got %d", status)
	}
	var walletKey string
	if err := json.Unmarshal(payload["wallet_key"], &walletKey); err != nil || len(walletKey) != 32 {
		t.Fatalf("expected 32 char wallet key, got %q", walletKey)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/users",
		`{"name":"Imposter","email":"ada@example.com","password":"other"}`)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", status)
	}
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","password":"secret"}`)

	status, _ := doJSON(t, app, fiber.MethodPost, "/users/login", `{"email":"ada@example.com","password":"secret"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPost, "/users/login", `{"email":"ada@example.com","password":"wrong"}`)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}
	status, _ = doJSON(t, app, fiber.MethodPost, "/users/login", `{"email":"ghost@example.com","password":"secret"}`)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", status)
	}
}

func TestBalanceEndpoint(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","password":"secret"}`)

	status, payload := doJSON(t, app, fiber.MethodGet, "/users/1/balance", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}
	var balance decimal.Decimal
	if err := json.Unmarshal(payload["balance"], &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", balance.String())
	}

	status, _ = doJSON(t, app, fiber.MethodGet, "/users/99/balance", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", status)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	app := newTestApp()
	doJSON(t, app, fiber.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","password":"secret"}`)

	status, _ := doJSON(t, app, fiber.MethodPut, "/users/1", `{"name":"Ada L."}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPut, "/users/99", `{"name":"Nobody"}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", status)
	}
}
