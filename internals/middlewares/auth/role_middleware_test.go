package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "okoce_backend/internals/helpers"
)

func TestOnlyRoles(t *testing.T) {
	t.Parallel()

	newApp := func(role string) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals(helper.LocUserID, uuid.NewString())
				c.Locals(helper.LocUserRole, role)
			}
			return c.Next()
		})
		app.Get("/admin/x", OnlyRoles("", "admin", "panitia"), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	cases := []struct {
		role string
		want int
	}{
		{"admin", fiber.StatusOK},
		{"panitia", fiber.StatusOK},
		{"user", fiber.StatusForbidden},
		{"", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		resp, err := newApp(tc.role).Test(httptest.NewRequest("GET", "/admin/x", nil))
		if err != nil {
			t.Fatalf("role %q: %v", tc.role, err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("role %q: got %d, want %d", tc.role, resp.StatusCode, tc.want)
		}
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		tok, err := extractBearerToken(c, "access_token")
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(tok)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer   \"abc\"")
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("header token: got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", "access_token=xyz")
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("cookie token: got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Token abc")
	if resp, _ := app.Test(req); resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bad scheme: got %d", resp.StatusCode)
	}
}
