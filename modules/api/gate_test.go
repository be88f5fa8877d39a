package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestDecideGate(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		hasSession bool
		want       GateDecision
	}{
		{"anonymous on login", "/login", false, GateAllow},
		{"anonymous on signup", "/signup", false, GateAllow},
		{"anonymous on home", "/", false, GateRedirectLogin},
		{"signed-in on login", "/login", true, GateRedirectHome},
		{"signed-in on signup", "/signup", true, GateRedirectHome},
		{"signed-in on home", "/", true, GateAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecideGate(tt.path, tt.hasSession); got != tt.want {
				t.Errorf("DecideGate(%q, %v) = %v, want %v", tt.path, tt.hasSession, got, tt.want)
			}
		})
	}
}

func TestRouteGateRedirects(t *testing.T) {
	app := fiber.New()
	app.Get("/", RouteGate(), func(c *fiber.Ctx) error { return c.SendString("home") })
	app.Get("/login", RouteGate(), func(c *fiber.Ctx) error { return c.SendString("login") })

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantStatus   int
		wantLocation string
	}{
		{"anonymous home redirects to login", "/", false, http.StatusFound, "/login"},
		{"anonymous login passes", "/login", false, http.StatusOK, ""},
		{"session home passes", "/", true, http.StatusOK, ""},
		{"session login redirects home", "/login", true, http.StatusFound, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withCookie {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "some-token"})
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if loc := resp.Header.Get("Location"); loc != tt.wantLocation {
					t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
				}
			}
		})
	}
}
