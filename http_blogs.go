package blog

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// BlogsController handles the blog post and comment routes
type BlogsController struct {
	Debug      bool
	posts      Posts
	contextKey string
	logger     Logger
}

// NewBlogsController creates a new controller
func NewBlogsController(posts Posts, contextKey string) *BlogsController {
	if contextKey == "" {
		contextKey = "user"
	}
	return &BlogsController{
		posts:      posts,
		contextKey: contextKey,
		logger:     defLogger{},
	}
}

func (c *BlogsController) WithLogger(l Logger) *BlogsController {
	if l != nil {
		c.logger = l
	}
	return c
}

// CreateBlogPayload is the blog creation body. Poster fields default to
// the authenticated identity when absent.
type CreateBlogPayload struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	PosterID    *string `json:"posterId"`
	PosterEmail *string `json:"posterEmail"`
}

// UpdateBlogPayload is the blog update body
type UpdateBlogPayload struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CommentPayload is the body for adding or editing a comment
type CommentPayload struct {
	Comment *string `json:"comment"`
}

func blogsListBody(posts []*Post) fiber.Map {
	message := "Blogs retrieved."
	if len(posts) < 1 {
		message = "No blogs found."
	}
	return fiber.Map{
		"success": true,
		"message": message,
		"blogs":   posts,
	}
}

// List handles GET /blogs
func (c *BlogsController) List(ctx *fiber.Ctx) error {
	posts, err := c.posts.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(blogsListBody(posts))
}

// ListOwn handles GET /blogs/own
func (c *BlogsController) ListOwn(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	posts, err := c.posts.ListByPoster(ctx.Context(), identity.ID)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(blogsListBody(posts))
}

// Show handles GET /blogs/:blogId
func (c *BlogsController) Show(ctx *fiber.Ctx) error {
	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "No blog found.")
		}
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Blog retrieved.",
		"blog":    post,
	})
}

// Create handles POST /blogs
func (c *BlogsController) Create(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	payload := CreateBlogPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if c.Debug {
		c.logger.Debug("create blog payload: %s", print.MaybePrettyJSON(payload))
	}

	// fall back to the authenticated poster when either attribution
	// field is missing
	if payload.PosterID == nil || payload.PosterEmail == nil {
		id := identity.ID.String()
		email := identity.Email
		payload.PosterID = &id
		payload.PosterEmail = &email
	}

	if payload.Title == nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	posterID, err := uuid.Parse(*payload.PosterID)
	if err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Invalid posterId")
	}

	if err := validation.Validate(*payload.PosterEmail, validation.Required, EmailRule); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Invalid posterEmail")
	}

	post := &Post{
		Title:       *payload.Title,
		PosterID:    posterID,
		PosterEmail: *payload.PosterEmail,
	}
	if payload.Content != nil {
		post.Content = *payload.Content
	}

	created, err := c.posts.Create(ctx.Context(), post)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Blog created.",
		"blog":    created,
	})
}

// Update handles PATCH /blogs/:blogId
func (c *BlogsController) Update(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	payload := UpdateBlogPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Invalid title")
	}

	if payload.Title == nil {
		return respondError(ctx, fiber.StatusBadRequest, "Invalid title")
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "No blog found.")
		}
		return err
	}

	if post.PosterID != identity.ID {
		return ErrActionForbidden
	}

	post.Title = *payload.Title
	if payload.Content != nil {
		post.Content = *payload.Content
	}

	updated, err := c.posts.Update(ctx.Context(), post)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Blog updated successfully",
		"blog":    updated,
	})
}

// Delete handles DELETE /blogs/:blogId
func (c *BlogsController) Delete(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "No blog found.")
		}
		return err
	}

	if !identity.IsAdmin && post.PosterID != identity.ID {
		return ErrActionForbidden
	}

	deleted, err := c.posts.Delete(ctx.Context(), blogID)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Blog deleted successfully",
		"blog":    deleted,
	})
}

// AddComment handles POST /blogs/:blogId/comments. Anonymous comments
// are allowed, attribution comes from the identity when one is present.
func (c *BlogsController) AddComment(ctx *fiber.Ctx) error {
	payload := CommentPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if payload.Comment == nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	if _, err := c.posts.GetByID(ctx.Context(), blogID); err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "No blog found.")
		}
		return err
	}

	comment := &Comment{
		PostID:  blogID,
		Comment: *payload.Comment,
	}
	if identity, ok := IdentityFromFiber(ctx, c.contextKey); ok {
		commenterID := identity.ID
		comment.CommenterID = &commenterID
		comment.CommenterEmail = identity.Email
	}

	if _, err := c.posts.AddComment(ctx.Context(), comment); err != nil {
		return err
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comment added.",
		"blog":    post,
	})
}

// UpdateComment handles PATCH /blogs/:blogId/comments/:commentId.
// Owners and admins may edit.
func (c *BlogsController) UpdateComment(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	payload := CommentPayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	if payload.Comment == nil {
		return respondError(ctx, fiber.StatusBadRequest, "Required inputs missing")
	}

	commentID, err := uuid.Parse(ctx.Params("commentId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No comment found.")
	}

	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	comment, err := c.posts.GetComment(ctx.Context(), blogID, commentID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "Comment not found.")
		}
		return err
	}

	if !canTouchComment(identity, comment) {
		return ErrActionForbidden
	}

	comment.Comment = *payload.Comment
	if _, err := c.posts.UpdateComment(ctx.Context(), comment); err != nil {
		return err
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Comment updated.",
		"blog":    post,
	})
}

// DeleteComment handles DELETE /blogs/:blogId/comments/:commentId.
// Owners and admins may delete.
func (c *BlogsController) DeleteComment(ctx *fiber.Ctx) error {
	identity, _ := IdentityFromFiber(ctx, c.contextKey)

	blogID, err := uuid.Parse(ctx.Params("blogId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "No blog found.")
	}

	commentID, err := uuid.Parse(ctx.Params("commentId"))
	if err != nil {
		return respondError(ctx, fiber.StatusNotFound, "Comment not found.")
	}

	comment, err := c.posts.GetComment(ctx.Context(), blogID, commentID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return respondError(ctx, fiber.StatusNotFound, "Comment not found.")
		}
		return err
	}

	if !canTouchComment(identity, comment) {
		return ErrActionForbidden
	}

	if err := c.posts.DeleteComment(ctx.Context(), blogID, commentID); err != nil {
		return err
	}

	post, err := c.posts.GetByID(ctx.Context(), blogID)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted successfully",
		"blog":    post,
	})
}

// canTouchComment allows the comment owner and admins. Anonymous
// comments have no owner, only admins may touch those.
func canTouchComment(identity *Identity, comment *Comment) bool {
	if identity == nil {
		return false
	}
	if identity.IsAdmin {
		return true
	}
	if comment.CommenterID == nil {
		return false
	}
	return *comment.CommenterID == identity.ID
}
