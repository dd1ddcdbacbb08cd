package handlers

import (
	"bytes"
	"errors"
	"html/template"

	"locgm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// tokenForm picks the CSRF token out of a form or JSON body.
type tokenForm struct {
	CSRFToken string `json:"csrf_token" form:"csrf_token"`
}

// submittedToken returns the CSRF token of the request body, falling back to
// the X-CSRF-Token header.
func submittedToken(c *fiber.Ctx) string {
	var f tokenForm
	_ = c.BodyParser(&f)
	if f.CSRFToken != "" {
		return f.CSRFToken
	}
	return c.Get("X-CSRF-Token")
}

// isAJAX reports whether the request was sent by the page's scripts.
func isAJAX(c *fiber.Ctx) bool {
	return c.Get(fiber.HeaderXRequestedWith) == "XMLHttpRequest"
}

// wantsJSON reports whether the caller expects a JSON answer rather than a page.
func wantsJSON(c *fiber.Ctx) bool {
	return isAJAX(c) || c.Is("json")
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": msg,
	})
}

// gateOrError answers a *services.GateError with its status, anything else
// with 500 and fallback.
func gateOrError(c *fiber.Ctx, err error, fallback string) error {
	var gerr *services.GateError
	if errors.As(err, &gerr) {
		return errorJSON(c, gerr.Status(), gerr.Message)
	}
	return errorJSON(c, fiber.StatusInternalServerError, fallback)
}

func render(c *fiber.Ctx, status int, tmpl *template.Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
