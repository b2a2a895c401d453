package blog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blog "github.com/ronnmabunga/blogging-website-app-api-demo"
)

// newGuardedApp mounts a guard behind a middleware that seeds the given
// identity into request locals, standing in for the decode middleware.
func newGuardedApp(identity *blog.Identity, guard fiber.Handler) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		if identity != nil {
			c.Locals("user", identity)
		}
		return c.Next()
	})

	app.Get("/guarded", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

func TestGuards(t *testing.T) {
	anonymous := (*blog.Identity)(nil)
	regular := &blog.Identity{ID: uuid.New(), Roles: []string{blog.RoleUser}}
	admin := &blog.Identity{ID: uuid.New(), IsAdmin: true, Roles: []string{blog.RoleAdmin}}
	moderator := &blog.Identity{ID: uuid.New(), Roles: []string{blog.RoleModerator}}

	tests := []struct {
		name       string
		guard      fiber.Handler
		identity   *blog.Identity
		wantStatus int
		wantBody   string
	}{
		{"anonymous passes RequireAnonymous", blog.RequireAnonymous("user"), anonymous, fiber.StatusOK, ""},
		{"user fails RequireAnonymous", blog.RequireAnonymous("user"), regular, fiber.StatusForbidden, blog.MsgPermissionDenied},
		{"admin fails RequireAnonymous", blog.RequireAnonymous("user"), admin, fiber.StatusForbidden, blog.MsgPermissionDenied},

		{"anonymous fails RequireAuthenticated", blog.RequireAuthenticated("user"), anonymous, fiber.StatusForbidden, blog.MsgPermissionDenied},
		{"user passes RequireAuthenticated", blog.RequireAuthenticated("user"), regular, fiber.StatusOK, ""},

		{"anonymous fails RequireAdmin", blog.RequireAdmin("user"), anonymous, fiber.StatusUnauthorized, blog.MsgAuthenticationFailed},
		{"user fails RequireAdmin", blog.RequireAdmin("user"), regular, fiber.StatusForbidden, blog.MsgPermissionDenied},
		{"admin passes RequireAdmin", blog.RequireAdmin("user"), admin, fiber.StatusOK, ""},

		{"anonymous fails RequireNotAdmin", blog.RequireNotAdmin("user"), anonymous, fiber.StatusUnauthorized, blog.MsgAuthenticationFailed},
		{"user passes RequireNotAdmin", blog.RequireNotAdmin("user"), regular, fiber.StatusOK, ""},
		{"admin fails RequireNotAdmin", blog.RequireNotAdmin("user"), admin, fiber.StatusForbidden, blog.MsgPermissionDenied},

		{"anonymous fails RequireRole", blog.RequireRole("user", blog.RoleModerator), anonymous, fiber.StatusUnauthorized, blog.MsgAuthenticationFailed},
		{"user fails RequireRole", blog.RequireRole("user", blog.RoleModerator), regular, fiber.StatusForbidden, blog.MsgPermissionDenied},
		{"moderator passes RequireRole", blog.RequireRole("user", blog.RoleModerator), moderator, fiber.StatusOK, ""},

		{"anonymous fails RequireNotRole", blog.RequireNotRole("user", blog.RoleModerator), anonymous, fiber.StatusUnauthorized, blog.MsgAuthenticationFailed},
		{"moderator fails RequireNotRole", blog.RequireNotRole("user", blog.RoleModerator), moderator, fiber.StatusForbidden, blog.MsgPermissionDenied},
		{"user passes RequireNotRole", blog.RequireNotRole("user", blog.RoleModerator), regular, fiber.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(tt.identity, tt.guard)

			res, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			if tt.wantBody != "" {
				body := decodeBody(t, res)
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantBody, body["message"])
			}
		})
	}
}
