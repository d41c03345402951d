package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func transferApp(cache *redis.Client, maxPerMin int) *fiber.App {
	app := fiber.New()
	app.Post("/operations/transfer", TransferRateLimit(cache, maxPerMin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func postTransfer(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/operations/transfer", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestTransferRateLimitPerSourceAccount(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer cache.Close()

	app := transferApp(cache, 2)

	for i := 0; i < 2; i++ {
		if code := postTransfer(t, app, `{"source_account_id":"ACC-1"}`); code != fiber.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i, code)
		}
	}
	if code := postTransfer(t, app, `{"source_account_id":"ACC-1"}`); code != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", code)
	}

	// A different source account has its own window.
	if code := postTransfer(t, app, `{"source_account_id":"ACC-2"}`); code != fiber.StatusOK {
		t.Fatalf("expected 200 for other account, got %d", code)
	}
}

func TestTransferRateLimitFailsOpenWithoutRedis(t *testing.T) {
	app := transferApp(nil, 1)

	for i := 0; i < 3; i++ {
		if code := postTransfer(t, app, `{"source_account_id":"ACC-1"}`); code != fiber.StatusOK {
			t.Fatalf("expected fail-open 200, got %d", code)
		}
	}
}
