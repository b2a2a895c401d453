package blog

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// UserStore is the slice of the users repository the controller needs
type UserStore interface {
	GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*User, error)
	Update(ctx context.Context, record *User, criteria ...repository.UpdateCriteria) (*User, error)
}

// UserRegistrar creates new accounts
type UserRegistrar interface {
	Execute(ctx context.Context, msg RegisterUserMessage) (*User, error)
}

// UsersController handles account registration, login and profile routes
type UsersController struct {
	Debug      bool
	store      UserStore
	registrar  UserRegistrar
	auther     Authenticator
	contextKey string
	logger     Logger
}

// NewUsersController creates a new controller
func NewUsersController(store UserStore, registrar UserRegistrar, auther Authenticator, contextKey string) *UsersController {
	if contextKey == "" {
		contextKey = "user"
	}
	return &UsersController{
		store:      store,
		registrar:  registrar,
		auther:     auther,
		contextKey: contextKey,
		logger:     defLogger{},
	}
}

func (c *UsersController) WithLogger(l Logger) *UsersController {
	if l != nil {
		c.logger = l
	}
	return c
}

// UserRecord is the wire representation of a user, the password hash
// never leaves the server
type UserRecord struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username,omitempty"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"isAdmin"`
	Roles     []string   `json:"roles,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewUserDTO maps a stored user onto its wire representation
func NewUserDTO(user *User) UserRecord {
	return UserRecord{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// RegisterUserPayload is the register request body. Pointer fields let
// us tell absent inputs apart from empty ones.
type RegisterUserPayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate runs the field checks in the order clients expect the
// messages to surface
func (p RegisterUserPayload) Validate() *goerrors.Error {
	if p.Email == nil || p.Password == nil {
		return badRequest("Required inputs missing")
	}
	if err := validation.Validate(*p.Email, validation.Required, EmailRule); err != nil {
		return badRequest("Invalid email")
	}
	if err := validation.Validate(*p.Password, validation.Required, PasswordRule); err != nil {
		return badRequest("Invalid password")
	}
	if p.Username != nil {
		if err := validation.Validate(*p.Username, UsernameRule); err != nil {
			return badRequest("Invalid username")
		}
	}
	return nil
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate runs the field checks for login. The password format is not
// enforced here, a wrong format fails verification like any other wrong
// password.
func (p LoginPayload) Validate() *goerrors.Error {
	if p.Email == nil || p.Password == nil {
		return badRequest("Required inputs missing")
	}
	if err := validation.Validate(*p.Email, validation.Required, EmailRule); err != nil {
		return badRequest("Invalid email")
	}
	return nil
}

// UpdateUserPayload is the profile update body, every field is optional
type UpdateUserPayload struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate checks each provided field against the same rules used at
// registration
func (p UpdateUserPayload) Validate() *goerrors.Error {
	if p.Email != nil {
		if err := validation.Validate(*p.Email, validation.Required, EmailRule); err != nil {
			return badRequest("Invalid email")
		}
	}
	if p.Password != nil {
		if err := validation.Validate(*p.Password, validation.Required, PasswordRule); err != nil {
			return badRequest("Invalid password")
		}
	}
	if p.Username != nil {
		if err := validation.Validate(*p.Username, UsernameRule); err != nil {
			return badRequest("Invalid username")
		}
	}
	return nil
}

func badRequest(msg string) *goerrors.Error {
	return goerrors.New(msg, goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

// Register handles POST /users/register
func (c *UsersController) Register(ctx *fiber.Ctx) error {
	payload := RegisterUserPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if c.Debug {
		c.logger.Debug("register payload: %s", print.MaybePrettyJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, err.Message)
	}

	msg := RegisterUserMessage{
		Email:     *payload.Email,
		Password:  *payload.Password,
		UseHashid: true,
	}
	if payload.Username != nil {
		msg.Username = *payload.Username
	}

	if _, err := c.registrar.Execute(ctx.Context(), msg); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered Successfully",
	})
}

// Login handles POST /users/login
func (c *UsersController) Login(ctx *fiber.Ctx) error {
	payload := LoginPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if err := payload.Validate(); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, err.Message)
	}

	token, err := c.auther.Login(ctx.Context(), *payload.Email, *payload.Password)
	if err != nil {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) && rich.Category == goerrors.CategoryAuth {
			return respondError(ctx, fiber.StatusUnauthorized, rich.Message)
		}
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User access granted.",
		"access":  token,
	})
}

// Details handles GET /users
func (c *UsersController) Details(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	user, err := c.store.GetByID(ctx.Context(), identity.ID.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "User data not found.")
		}
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User data found.",
		"user":    NewUserDTO(user),
	})
}

// Update handles PATCH /users
func (c *UsersController) Update(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	payload := UpdateUserPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if err := payload.Validate(); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, err.Message)
	}

	user, err := c.store.GetByID(ctx.Context(), identity.ID.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusBadRequest, "User not found.")
		}
		return err
	}

	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Username != nil {
		user.Username = *payload.Username
	}
	if payload.Password != nil {
		hash, err := HashPassword(*payload.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	updated, err := c.store.Update(ctx.Context(), user)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully.",
		"user":    NewUserDTO(updated),
	})
}
