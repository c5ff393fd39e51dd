package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func validatePostFields(title, description string) *validation.Errors {
	errs := validation.New()
	errs.Field("title", title).Required().Min(3).Max(255)
	errs.Field("description", description).Required()
	return errs
}

// GetPosts handles GET /v1/posts: the feed of published posts with the
// author's public projection.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPublished(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch posts",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": posts,
	})
}

// CreatePost handles POST /v1/posts. The owner is always the authenticated
// caller; a user_id in the payload is ignored.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := validatePostFields(req.Title, req.Description); !errs.Empty() {
		return respondValidation(c, errs)
	}

	_, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
	})
}

// GetPost handles GET /v1/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": post,
	})
}

// UpdatePost handles PUT /v1/posts/:id. Only the owner may edit; a non-owner
// gets the identical 404 body as a missing post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Field validation precedes the existence and ownership checks.
	if errs := validatePostFields(req.Title, req.Description); !errs.Empty() {
		return respondValidation(c, errs)
	}

	_, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		PostID:      id,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post update",
	})
}

// PublishPost handles PATCH /v1/posts/:id/published
func (s *Server) PublishPost(c *fiber.Ctx) error {
	id, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	_, err := s.postService.PublishPost(c.UserContext(), id)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case models.CodeConflict:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"message": "Post already published",
				})
			case models.CodeNotFound:
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Post not found",
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post published",
	})
}

// ArchivePost handles PATCH /v1/posts/:id/archive. The conflict body uses the
// "error" key while publish uses "message"; clients assert on the exact keys.
func (s *Server) ArchivePost(c *fiber.Ctx) error {
	id, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	_, err := s.postService.ArchivePost(c.UserContext(), id)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case models.CodeConflict:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Post already archived",
				})
			case models.CodeNotFound:
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Post not found",
				})
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post archived",
	})
}
