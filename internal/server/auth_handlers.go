package server

import (
	"errors"

	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /v1/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	errs := validation.New()
	errs.Field("name", req.Name).Required().Min(6).Max(255)
	errs.Field("email", req.Email).Required().Email().Max(255)
	errs.Field("password", req.Password).Required().Confirmed(req.PasswordConfirmation).Min(6).Max(255)

	// Uniqueness belongs to the validation pass so the taken-email failure
	// lands in the same 422 field map as any format errors.
	if _, taken := errs.Fields()["email"]; !taken && req.Email != "" {
		existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if existing != nil {
			errs.Add("email", validation.ErrEmailTaken)
		}
	}

	if !errs.Empty() {
		return respondValidation(c, errs)
	}

	_, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeValidation {
			// Lost the insert race on the unique index.
			raceErrs := validation.New()
			raceErrs.Add("email", appErr.Message)
			return respondValidation(c, raceErrs)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

// Login handles POST /v1/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	errs := validation.New()
	errs.Field("email", req.Email).Required().Email().Min(10).Max(255)
	errs.Field("password", req.Password).Required().Min(6).Max(255)
	if !errs.Empty() {
		return respondValidation(c, errs)
	}

	user, token, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeUnauthorized {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  user,
		"token": token,
	})
}
