package handlers

import (
	"errors"

	"locgm/internal/middleware"
	"locgm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin panel API and its listings.
type AdminHandler struct {
	service *services.AdminService
	csrf    *services.CSRFGuard
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService, csrf *services.CSRFGuard) *AdminHandler {
	return &AdminHandler{
		service: service,
		csrf:    csrf,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	// every method reaches the dispatcher, which answers 405 itself
	adminRoutes.All("/api", h.HandleAPI)
	adminRoutes.Get("/companies", middleware.RequireLogin(), h.requireEmpresa, h.HandleCompanies)
	adminRoutes.Get("/users", middleware.RequireLogin(), h.requireEmpresa, h.HandleUsers)
}

// HandleAPI runs one admin action.
func (h *AdminHandler) HandleAPI(c *fiber.Ctx) error {
	var form services.AdminForm
	if c.Method() == fiber.MethodPost {
		_ = c.BodyParser(&form)
	}

	result, err := h.service.Dispatch(services.AdminRequest{
		Method:  c.Method(),
		Session: middleware.Values(c),
		Form:    form,
	})
	if err != nil {
		var gerr *services.GateError
		if errors.As(err, &gerr) {
			return errorJSON(c, gerr.Status(), gerr.Message)
		}
		return errorJSON(c, fiber.StatusInternalServerError, services.MsgWriteFailed)
	}
	return c.JSON(result)
}

// HandleCompanies lists companies for the admin panel.
func (h *AdminHandler) HandleCompanies(c *fiber.Ctx) error {
	companies, ok := h.service.Companies()
	return c.JSON(fiber.Map{
		"companies":  companies,
		"available":  ok,
		"csrf_token": h.csrf.Current(middleware.Values(c)),
	})
}

// HandleUsers lists users for the admin panel.
func (h *AdminHandler) HandleUsers(c *fiber.Ctx) error {
	users, ok := h.service.Users()
	return c.JSON(fiber.Map{
		"users":      users,
		"available":  ok,
		"csrf_token": h.csrf.Current(middleware.Values(c)),
	})
}

func (h *AdminHandler) requireEmpresa(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	if !user.IsEmpresa() {
		return errorJSON(c, fiber.StatusForbidden, services.MsgAdminOnly)
	}
	return c.Next()
}
