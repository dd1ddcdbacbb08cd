package services

import (
	"errors"
	"fmt"
	"strings"

	"locgm/internal/models"
	"locgm/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// PlaceInput is a submitted place, numeric fields still unparsed.
type PlaceInput struct {
	ID      FormNumber `json:"id" form:"id"`
	Name    string     `json:"name" form:"name" validate:"required"`
	Type    string     `json:"type" form:"type" validate:"placetype"`
	Lat     FormNumber `json:"lat" form:"lat" validate:"numrange=-90:90"`
	Lng     FormNumber `json:"lng" form:"lng" validate:"numrange=-180:180"`
	Rating  FormNumber `json:"rating" form:"rating" validate:"numrange=0:5"`
	Address string     `json:"address" form:"address"`
}

var placeMessages = map[string]string{
	"name":   "Informe o nome do local.",
	"type":   "Tipo de local inválido.",
	"lat":    "Latitude inválida.",
	"lng":    "Longitude inválida.",
	"rating": "Nota deve ser entre 0 e 5.",
}

// PlaceService handles business logic related to places on the map.
type PlaceService struct {
	repo     repositories.PlaceRepository
	validate *validator.Validate
	log      zerolog.Logger
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(repo repositories.PlaceRepository, log zerolog.Logger) *PlaceService {
	return &PlaceService{
		repo:     repo,
		validate: newValidator(),
		log:      log,
	}
}

// All returns every place, for the map.
func (s *PlaceService) All() ([]models.Place, error) {
	return s.repo.GetAll()
}

// Mine returns the places owned by ownerEmail.
func (s *PlaceService) Mine(ownerEmail string) ([]models.Place, error) {
	return s.repo.GetByOwner(ownerEmail)
}

// Save validates in and stores it for ownerEmail: a new place when no id is
// given, otherwise an update of the caller's own place. Every invalid field is
// reported at once through ValidationErrors, and nothing is stored.
func (s *PlaceService) Save(ownerEmail string, in PlaceInput) (*models.Place, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Address = strings.TrimSpace(in.Address)
	in.Lat = FormNumber(strings.TrimSpace(in.Lat.String()))
	in.Lng = FormNumber(strings.TrimSpace(in.Lng.String()))
	in.Rating = FormNumber(strings.TrimSpace(in.Rating.String()))
	if in.Type == "" {
		in.Type = string(models.PlaceRestaurante)
	}

	if err := s.validate.Struct(in); err != nil {
		return nil, fieldErrors(err, placeMessages)
	}

	place := &models.Place{
		ID:         parseID(in.ID.String()),
		Name:       in.Name,
		Type:       models.PlaceType(in.Type),
		Lat:        mustFloat(in.Lat),
		Lng:        mustFloat(in.Lng),
		Rating:     mustFloat(in.Rating),
		Address:    in.Address,
		OwnerEmail: ownerEmail,
	}

	if place.ID == 0 {
		if err := s.repo.Create(place); err != nil {
			return nil, fmt.Errorf("failed to create place: %w", err)
		}
		s.log.Info().Uint("id", place.ID).Str("owner", ownerEmail).Msg("place created")
		return place, nil
	}

	existing, err := s.repo.GetByID(place.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if existing.OwnerEmail != ownerEmail {
		return nil, ErrPlaceNotFound
	}
	if err := s.repo.Update(place); err != nil {
		return nil, fmt.Errorf("failed to update place %d: %w", place.ID, err)
	}
	s.log.Info().Uint("id", place.ID).Str("owner", ownerEmail).Msg("place updated")
	return place, nil
}

// mustFloat parses a number that already passed validation.
func mustFloat(n FormNumber) float64 {
	f, _ := n.Float()
	return f
}
