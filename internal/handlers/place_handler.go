package handlers

import (
	"errors"
	"html/template"

	"locgm/internal/middleware"
	"locgm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	placeErrorsTmpl = template.Must(template.New("place_errors").Parse(
		`<div class="alert alert-danger"><ul>{{range $field, $msg := .}}<li data-field="{{$field}}">{{$msg}}</li>{{end}}</ul></div>`))
	placeSavedTmpl = template.Must(template.New("place_saved").Parse(
		`<div class="alert alert-success">Local salvo! <strong>{{.Name}}</strong></div>`))
)

// PlaceHandler handles HTTP requests for map places.
type PlaceHandler struct {
	service *services.PlaceService
	gate    *services.Gatekeeper
	log     zerolog.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *services.PlaceService, gate *services.Gatekeeper, log zerolog.Logger) *PlaceHandler {
	return &PlaceHandler{
		service: service,
		gate:    gate,
		log:     log,
	}
}

// RegisterRoutes registers the place routes with the Fiber app.
func (h *PlaceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/api/places", h.HandleGetPlaces)

	empresaRoutes := router.Group("/empresa")
	empresaRoutes.Post("/places", h.HandleSavePlace)
	empresaRoutes.Get("/places", middleware.RequireLogin(), h.HandleGetOwnPlaces)
}

// HandleGetPlaces returns every place for the map script.
func (h *PlaceHandler) HandleGetPlaces(c *fiber.Ctx) error {
	places, err := h.service.All()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list places")
		return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível carregar os locais")
	}
	return c.JSON(places)
}

// HandleGetOwnPlaces returns the places of the logged-in business.
func (h *PlaceHandler) HandleGetOwnPlaces(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	if !user.IsEmpresa() {
		return errorJSON(c, fiber.StatusForbidden, services.MsgEmpresaOnly)
	}
	places, err := h.service.Mine(user.Email)
	if err != nil {
		h.log.Error().Err(err).Str("owner", user.Email).Msg("failed to list own places")
		return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível carregar os locais")
	}
	return c.JSON(fiber.Map{"places": places})
}

// HandleSavePlace creates or updates a place of the logged-in business.
// Script callers get JSON; plain form posts get an HTML fragment.
func (h *PlaceHandler) HandleSavePlace(c *fiber.Ctx) error {
	user, err := h.gate.RequireEmpresa(middleware.Values(c), submittedToken(c), services.MsgEmpresaOnly)
	if err != nil {
		return gateOrError(c, err, services.MsgWriteFailed)
	}

	var in services.PlaceInput
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, services.MsgInvalidData)
	}

	place, err := h.service.Save(user.Email, in)
	if err != nil {
		var verrs services.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			if !isAJAX(c) {
				return render(c, fiber.StatusUnprocessableEntity, placeErrorsTmpl, verrs)
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"status": "error",
				"errors": verrs,
			})
		case errors.Is(err, services.ErrPlaceNotFound):
			return errorJSON(c, fiber.StatusNotFound, services.MsgPlaceNotFound)
		default:
			h.log.Error().Err(err).Str("owner", user.Email).Msg("failed to save place")
			return errorJSON(c, fiber.StatusInternalServerError, "Não foi possível salvar o local")
		}
	}

	if !isAJAX(c) {
		return render(c, fiber.StatusOK, placeSavedTmpl, place)
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"place":  place,
	})
}
