package server

import (
	"errors"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /v1/user, returning the caller's identity as a bare
// user object (no data envelope).
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.authService.GetUser(c.UserContext(), currentUserID(c))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
