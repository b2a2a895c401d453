package blog

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// MessagesController handles the contact message routes
type MessagesController struct {
	Debug  bool
	store  ContactMessages
	logger Logger

	// DefaultRegion is the region used to parse phone numbers that carry
	// no country prefix
	DefaultRegion string
}

// NewMessagesController creates a new controller
func NewMessagesController(store ContactMessages) *MessagesController {
	return &MessagesController{
		store:         store,
		logger:        defLogger{},
		DefaultRegion: "US",
	}
}

func (c *MessagesController) WithLogger(l Logger) *MessagesController {
	if l != nil {
		c.logger = l
	}
	return c
}

// ContactMessagePayload is the contact form body. Name and phone are
// optional, visitors may write in without identifying themselves.
type ContactMessagePayload struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Message *string `json:"message"`
}

// Validate runs the field checks in the order clients expect the
// messages to surface
func (p ContactMessagePayload) Validate() *goerrors.Error {
	if p.Email == nil || p.Message == nil {
		return badRequest("Required inputs missing")
	}
	if err := validation.Validate(*p.Message, validation.Required); err != nil {
		return badRequest("Invalid message")
	}
	if err := validation.Validate(*p.Email, validation.Required, EmailRule); err != nil {
		return badRequest("Invalid email")
	}
	if p.Name != nil {
		if err := validation.Validate(*p.Name, validation.Required, validation.Length(1, 120)); err != nil {
			return badRequest("Invalid name")
		}
	}
	return nil
}

// normalizePhone parses an optional phone number and formats it as E164.
// An empty value stays empty.
func (c *MessagesController) normalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, c.DefaultRegion)
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// List handles GET /messages
func (c *MessagesController) List(ctx *fiber.Ctx) error {
	records, err := c.store.List(ctx.Context())
	if err != nil {
		return err
	}

	message := "Messages retrieved."
	if len(records) < 1 {
		message = "No messages found."
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  message,
		"messages": records,
	})
}

// Create handles POST /messages
func (c *MessagesController) Create(ctx *fiber.Ctx) error {
	payload := ContactMessagePayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondFailure(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if c.Debug {
		c.logger.Debug("contact message payload: %s", print.MaybePrettyJSON(payload))
	}

	if err := payload.Validate(); err != nil {
		return respondFailure(ctx, fiber.StatusBadRequest, err.Message)
	}

	record := &ContactMessage{
		Email:   *payload.Email,
		Message: *payload.Message,
	}
	if payload.Name != nil {
		record.Name = *payload.Name
	}

	if payload.Phone != nil {
		phone, err := c.normalizePhone(*payload.Phone)
		if err != nil {
			return respondFailure(ctx, fiber.StatusBadRequest, "Invalid phone")
		}
		record.Phone = phone
	}

	created, err := c.store.Create(ctx.Context(), record)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message created.",
		"data":    created,
	})
}

// MarkRead handles PATCH /messages/:messageId
func (c *MessagesController) MarkRead(ctx *fiber.Ctx) error {
	messageID, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return respondFailure(ctx, fiber.StatusBadRequest, "Invalid ID")
	}

	record, err := c.store.MarkRead(ctx.Context(), messageID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondFailure(ctx, fiber.StatusNotFound, "No message found.")
		}
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Message updated successfully",
		"data":    record,
	})
}
