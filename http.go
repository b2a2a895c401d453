package blog

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/ronnmabunga/blogging-website-app-api-demo/middleware/tokenware"
)

// MsgUnexpectedError is the catch all body for unhandled failures
const MsgUnexpectedError = "An unexpected error has occurred."

type tokenValidatorAdapter struct {
	ts TokenService
}

func (a tokenValidatorAdapter) Validate(tokenString string) (tokenware.AuthClaims, error) {
	claims, err := a.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// NewDecodeMiddleware builds the token decode middleware. Tokens are
// validated and their subject re checked against the user store on
// every request, failures short of a storage error leave the request
// unauthenticated instead of rejecting it.
func NewDecodeMiddleware(opts Config, ts TokenService, provider IdentityProvider) fiber.Handler {
	return tokenware.New(tokenware.Config{
		ContextKey:     opts.GetContextKey(),
		TokenLookup:    opts.GetTokenLookup(),
		AuthScheme:     opts.GetAuthScheme(),
		TokenValidator: tokenValidatorAdapter{ts: ts},
		IdentityResolver: func(ctx context.Context, claims tokenware.AuthClaims) (any, error) {
			ac, ok := claims.(AuthClaims)
			if !ok {
				return nil, ErrIdentityNotFound
			}

			identity, err := ClaimsIdentity(ac)
			if err != nil {
				// a subject that is not a UUID was never ours
				return nil, ErrIdentityNotFound
			}

			fresh, err := provider.FindIdentityBySubject(ctx, identity.ID.String())
			if err != nil {
				return nil, err
			}
			return fresh, nil
		},
	})
}

// RegisterRoutes mounts every route group. The decode middleware runs
// before the guards so guards only ever consult request locals.
func RegisterRoutes(r fiber.Router, contextKey string, decode fiber.Handler, users *UsersController, blogs *BlogsController, messages *MessagesController) {
	ur := r.Group("/users", decode)
	ur.Post("/register", RequireAnonymous(contextKey), users.Register)
	ur.Post("/login", RequireAnonymous(contextKey), users.Login)
	ur.Get("/", RequireAuthenticated(contextKey), users.Details)
	ur.Patch("/", RequireAuthenticated(contextKey), users.Update)

	br := r.Group("/blogs", decode)
	br.Get("/", blogs.List)
	// register before the :blogId wildcard
	br.Get("/own", RequireAuthenticated(contextKey), blogs.ListOwn)
	br.Get("/:blogId", blogs.Show)
	br.Post("/", RequireAuthenticated(contextKey), blogs.Create)
	br.Patch("/:blogId", RequireAuthenticated(contextKey), blogs.Update)
	br.Delete("/:blogId", RequireAuthenticated(contextKey), blogs.Delete)
	br.Post("/:blogId/comments", blogs.AddComment)
	br.Patch("/:blogId/comments/:commentId", RequireAuthenticated(contextKey), blogs.UpdateComment)
	br.Delete("/:blogId/comments/:commentId", RequireAuthenticated(contextKey), blogs.DeleteComment)

	mr := r.Group("/messages", decode)
	mr.Get("/", RequireAdmin(contextKey), messages.List)
	mr.Post("/", messages.Create)
	mr.Patch("/:messageId", RequireAdmin(contextKey), messages.MarkRead)
}

// NewErrorHandler builds the fiber global error handler. Rich errors map
// to their category status, everything else is logged and hidden behind
// a generic 500.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var rich *errors.Error
		if errors.As(err, &rich) {
			return c.Status(statusForCategory(rich.Category)).JSON(fiber.Map{
				"error": rich.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		logger.Error("unhandled error: %v", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": MsgUnexpectedError,
		})
	}
}

func statusForCategory(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the {error} envelope used by the user and blog routes
func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// respondFailure writes the {success,message} envelope used by the
// message routes and the guards
func respondFailure(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
