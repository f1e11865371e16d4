package config

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	app := NewFiber(logger)

	server, err := NewServer(
		WithFiber(app),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithUtils(),
	)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return server, app
}

func TestNewServerRequiresFiber(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if _, err := NewServer(WithLogger(logger)); err == nil {
		t.Error("expected an error without a fiber app")
	}
}

func TestNewServerRequiresLogger(t *testing.T) {
	if _, err := NewServer(WithFiber(fiber.New())); err == nil {
		t.Error("expected an error without a logger")
	}
}

func TestHealthCheck(t *testing.T) {
	server, app := newTestServer(t)
	server.RegisterHandler()

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if payload["status"] != "healthy" {
		t.Errorf("unexpected status: %q", payload["status"])
	}
	if payload["service"] == "" {
		t.Error("expected a service name")
	}
}

func TestCORSPreflight(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard allow-origin, got %q", got)
	}
}
