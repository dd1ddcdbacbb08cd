package handlers

import (
	"locgm/internal/middleware"
	"locgm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// FeedHandler handles HTTP requests for the promotional feed.
type FeedHandler struct {
	service *services.FeedService
	gate    *services.Gatekeeper
	csrf    *services.CSRFGuard
	log     zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(service *services.FeedService, gate *services.Gatekeeper, csrf *services.CSRFGuard, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		service: service,
		gate:    gate,
		csrf:    csrf,
		log:     log,
	}
}

// RegisterRoutes registers the feed routes with the Fiber app.
func (h *FeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/feed", h.HandleGetFeed)
	router.Post("/feed", h.HandlePost)
}

// PostRequest represents the request body for a feed post.
type PostRequest struct {
	Content   string `json:"content" form:"content"`
	CSRFToken string `json:"csrf_token" form:"csrf_token"`
}

// HandleGetFeed returns the feed, newest first.
func (h *FeedHandler) HandleGetFeed(c *fiber.Ctx) error {
	posts, err := h.service.List()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list posts")
		return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível carregar o feed")
	}
	user, _ := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"posts":      posts,
		"can_post":   user.IsEmpresa(),
		"csrf_token": h.csrf.Current(middleware.Values(c)),
	})
}

// HandlePost appends a post by the logged-in business. Blank posts are
// accepted and dropped.
func (h *FeedHandler) HandlePost(c *fiber.Ctx) error {
	var req PostRequest
	_ = c.BodyParser(&req)

	user, err := h.gate.RequireEmpresa(middleware.Values(c), req.CSRFToken, services.MsgEmpresaOnly)
	if err != nil {
		return gateOrError(c, err, services.MsgWriteFailed)
	}

	post, err := h.service.Publish(user, req.Content)
	if err != nil {
		h.log.Error().Err(err).Str("author", user.Email).Msg("failed to publish post")
		return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível publicar")
	}

	if !wantsJSON(c) {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	if post == nil {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"post":   post,
	})
}
