package server

import (
	"strings"

	"pustaka/internal/auth"
	"pustaka/internal/models"
	"pustaka/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/user/register.
// Validation follows a fixed rule order; the first failing rule's message is
// returned with a 400. Persistence failures also surface as 400, never 500.
func (s *Server) Register(c *fiber.Ctx) error {
	ctx := c.Context()

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

	var lookupErr error
	rules := []validation.Rule{
		validation.Required("name", req.Name, "The name field is required."),
		validation.MaxLen("name", req.Name, 255, "The name may not be greater than 255 characters."),
		validation.Required("email", req.Email, "The email field is required."),
		validation.Email("email", req.Email, "The email must be a valid email address."),
		validation.MaxLen("email", req.Email, 255, "The email may not be greater than 255 characters."),
		{
			Field:   "email",
			Message: "The email has already been taken.",
			Check: func() bool {
				existing, err := s.userRepo.GetByEmail(ctx, req.Email)
				if err != nil {
					lookupErr = err
					return false
				}
				return existing == nil
			},
		},
		validation.Required("password", req.Password, "The password field is required."),
		validation.MinLen("password", req.Password, 6, "The password must be at least 6 characters."),
		{
			Field:   "password",
			Message: "The password confirmation does not match.",
			Check:   func() bool { return req.Password == req.PasswordConfirmation },
		},
	}
	if err := validation.First(rules); err != nil {
		if lookupErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewInvalidDataError(lookupErr))
		}
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidDataError(err))
	}

	user := &models.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      string(hashedPassword),
		RememberToken: generateRememberToken(),
	}
	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		return models.RespondWithError(c, models.StatusForError(createErr), createErr)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidDataError(err))
	}

	return c.JSON(fiber.Map{
		"name":  user.Name,
		"email": user.Email,
		"token": token,
	})
}

// Login handles POST /api/user/login.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rules := []validation.Rule{
		validation.Required("email", req.Email, "The email field is required."),
		validation.Email("email", req.Email, "The email must be a valid email address."),
		validation.MaxLen("email", req.Email, 255, "The email may not be greater than 255 characters."),
		validation.Required("password", req.Password, "The password field is required."),
		validation.MinLen("password", req.Password, 6, "The password must be at least 6 characters."),
	}
	if err := validation.First(rules); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("User tidak ditemukan"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Password tidak cocok"))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidDataError(err))
	}

	return c.JSON(fiber.Map{
		"email": user.Email,
		"token": token,
	})
}

// Logout handles POST /api/user/logout. It revokes exactly the token that
// authenticated this request; other tokens issued to the same user stay valid.
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("tokenClaims").(*auth.Claims)
	if !ok || claims == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	if err := s.tokens.Revoke(c.Context(), claims); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidDataError(err))
	}

	return c.JSON(fiber.Map{
		"message": "Logout anda berhasil",
	})
}

// generateRememberToken creates the 10 character opaque token stored with
// each user for session bookkeeping.
func generateRememberToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
