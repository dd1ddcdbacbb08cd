package models

// PlaceType is the category a place is shown under on the map.
type PlaceType string

const (
	PlaceRestaurante PlaceType = "restaurante"
	PlaceMercado     PlaceType = "mercado"
	PlacePousada     PlaceType = "pousada"
	PlaceFarmacia    PlaceType = "farmacia"
	PlaceTurismo     PlaceType = "turismo"
)

// PlaceTypes lists the accepted categories in display order.
var PlaceTypes = []PlaceType{PlaceRestaurante, PlaceMercado, PlacePousada, PlaceFarmacia, PlaceTurismo}

// Place represents a point of interest owned by a business.
type Place struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Type       PlaceType `json:"type"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Rating     float64   `json:"rating"`
	Address    string    `json:"address"`
	OwnerEmail string    `json:"owner_email"`
}

// Valid reports whether t is one of PlaceTypes.
func (t PlaceType) Valid() bool {
	for _, known := range PlaceTypes {
		if t == known {
			return true
		}
	}
	return false
}
