package server

import (
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parsePostID extracts the :id route parameter. A non-numeric or non-positive
// id is answered exactly like a missing post so the route never reveals
// whether an id is malformed or merely absent. When ok is false the 404 has
// already been written and the handler must return nil.
func (s *Server) parsePostID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
		return 0, false
	}
	return uint(id), true
}

// respondValidation writes the 422 envelope: a summarizing message plus the
// per-field error map.
func respondValidation(c *fiber.Ctx, errs *validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": errs.Message(),
		"errors":  errs,
	})
}

// currentUserID returns the authenticated user ID placed by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	uid, _ := c.Locals("userID").(uint)
	return uid
}
