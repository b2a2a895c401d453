package blog

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// MsgAuthenticationFailed is the body for requests with no usable identity
	// on guards that require one
	MsgAuthenticationFailed = "Authentication Failed. Please provide valid credentials."
	// MsgPermissionDenied is the body for requests whose identity lacks access
	MsgPermissionDenied = "You do not have permission to access this resource."
)

func guardUnauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": MsgAuthenticationFailed,
	})
}

func guardForbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"success": false,
		"message": MsgPermissionDenied,
	})
}

// RequireAnonymous rejects requests that already carry an identity.
// Used on register and login so sessions cannot stack.
func RequireAnonymous(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromFiber(c, contextKey); ok {
			return guardForbidden(c)
		}
		return c.Next()
	}
}

// RequireAuthenticated rejects requests with no identity
func RequireAuthenticated(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromFiber(c, contextKey); !ok {
			return guardForbidden(c)
		}
		return c.Next()
	}
}

// RequireAdmin rejects unauthenticated requests with a 401 and
// authenticated non admins with a 403
func RequireAdmin(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			return guardUnauthenticated(c)
		}
		if !identity.IsAdmin {
			return guardForbidden(c)
		}
		return c.Next()
	}
}

// RequireNotAdmin rejects unauthenticated requests with a 401 and
// admins with a 403
func RequireNotAdmin(contextKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			return guardUnauthenticated(c)
		}
		if identity.IsAdmin {
			return guardForbidden(c)
		}
		return c.Next()
	}
}

// RequireRole allows only identities carrying at least one of the
// allowed roles
func RequireRole(contextKey string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			return guardUnauthenticated(c)
		}
		if !identity.HasAnyRole(allowedRoles...) {
			return guardForbidden(c)
		}
		return c.Next()
	}
}

// RequireNotRole rejects identities carrying any of the given roles
func RequireNotRole(contextKey string, deniedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromFiber(c, contextKey)
		if !ok {
			return guardUnauthenticated(c)
		}
		if identity.HasAnyRole(deniedRoles...) {
			return guardForbidden(c)
		}
		return c.Next()
	}
}
