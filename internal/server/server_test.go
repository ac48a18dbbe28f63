package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"brandpulse/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:        "production",
		ServerAddr: ":0",
		BaseURL:    "http://dashboard.example.com",
		SiteTitle:  "BrandPulse",
	}
}

// Unknown API routes must come back as the JSON error envelope, never as a
// rendered page.
func TestUnknownAPIRouteJSONEnvelope(t *testing.T) {
	s := New(testConfig())

	req := httptest.NewRequest("GET", "/api/does-not-exist", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	raw, _ := io.ReadAll(resp.Body)
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	if body["status"] != "error" {
		t.Errorf("envelope status = %v, want error", body["status"])
	}
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in %v", body)
	}
	if errObj["code"] != "internal_error" {
		t.Errorf("code = %v", errObj["code"])
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = "https://allowed.example.com"
	s := New(cfg)

	s.App.Get("/api/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Origin", "https://allowed.example.com")
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://allowed.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRequestIDAssigned(t *testing.T) {
	s := New(testConfig())

	req := httptest.NewRequest("GET", "/api/does-not-exist", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}
}
