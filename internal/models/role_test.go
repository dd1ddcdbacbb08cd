package models_test

import (
	"testing"

	"locgm/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := map[string]models.Role{
		"":          models.RoleVisitante,
		"visitante": models.RoleVisitante,
		" Empresa ": models.RoleEmpresa,
		"empresa":   models.RoleEmpresa,
	}
	for raw, want := range cases {
		got, err := models.ParseRole(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := models.ParseRole("admin")
	assert.ErrorIs(t, err, models.ErrInvalidRole)
}

func TestUser_DisplayName(t *testing.T) {
	u := &models.User{Name: "Maria", CompanyName: "Padaria Central"}
	assert.Equal(t, "Padaria Central", u.DisplayName())

	u.CompanyName = ""
	assert.Equal(t, "Maria", u.DisplayName())
	assert.False(t, u.IsEmpresa())

	var nilUser *models.User
	assert.False(t, nilUser.IsEmpresa())
}

func TestPlaceTypeValid(t *testing.T) {
	for _, pt := range models.PlaceTypes {
		assert.True(t, pt.Valid(), string(pt))
	}
	assert.False(t, models.PlaceType("cassino").Valid())
	assert.False(t, models.PlaceType("").Valid())
}
