package handlers

import (
	"errors"

	"locgm/internal/middleware"
	"locgm/internal/models"
	"locgm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles HTTP requests for login and the user's own profile.
type AuthHandler struct {
	authService *services.AuthService
	gate        *services.Gatekeeper
	csrf        *services.CSRFGuard
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, gate *services.Gatekeeper, csrf *services.CSRFGuard, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		gate:        gate,
		csrf:        csrf,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
	router.Get("/me", middleware.RequireLogin(), h.HandleMe)
	router.Post("/profile", h.HandleProfile)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email string `json:"email" form:"email"`
	Role  string `json:"role" form:"role"`
}

// HandleLogin registers or fetches the user by email and binds it to the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, services.MsgInvalidData)
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, services.MsgInvalidRole)
	}

	user, err := h.authService.Establish(middleware.Values(c), req.Email, role)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			return errorJSON(c, fiber.StatusBadRequest, services.MsgInvalidEmail)
		}
		h.log.Error().Err(err).Msg("login failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível entrar")
	}

	if !wantsJSON(c) {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"status":     "ok",
		"user":       user,
		"csrf_token": h.csrf.Current(middleware.Values(c)),
	})
}

// HandleMe returns the logged-in user together with the page-level CSRF token.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"user":       user,
		"csrf_token": h.csrf.Current(middleware.Values(c)),
	})
}

// HandleProfile applies a self-edit of the logged-in user's profile.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	var in services.ProfileInput
	_ = c.BodyParser(&in)

	values := middleware.Values(c)
	user, err := h.gate.RequireUser(values, in.CSRFToken)
	if err != nil {
		return gateOrError(c, err, services.MsgWriteFailed)
	}

	updated, err := h.authService.UpdateProfile(values, user, in)
	if err != nil {
		var verrs services.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status": "error",
				"errors": verrs,
			})
		}
		return errorJSON(c, fiber.StatusInternalServerError, services.MsgWriteFailed)
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"user":   updated,
	})
}
