package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// Zero refill rate, burst of one: the second request must be rejected.
	m := &middleware{
		rateLimitter:        newRateLimiter(0, 1),
		requestIDMiddleware: NewRequestIDMiddleware(),
		log:                 logger,
	}

	app := fiber.New()
	app.Get("/limited", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	first, err := app.Test(httptest.NewRequest("GET", "/limited", nil), 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	first.Body.Close()
	if first.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for the first request, got %d", first.StatusCode)
	}

	second, err := app.Test(httptest.NewRequest("GET", "/limited", nil), 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer second.Body.Close()

	if second.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(second.Body).Decode(&payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if payload["success"] != false {
		t.Error("expected success=false")
	}
	if payload["error"] != "too many requests" {
		t.Errorf("unexpected error message: %v", payload["error"])
	}
}
