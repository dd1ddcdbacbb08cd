package models

import (
	"errors"
	"strings"
)

// Role is the closed set of account kinds.
type Role string

const (
	RoleEmpresa   Role = "empresa"
	RoleVisitante Role = "visitante"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole maps raw input to a Role. Empty input means visitante.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleVisitante:
		return RoleVisitante, nil
	case RoleEmpresa:
		return RoleEmpresa, nil
	}
	return "", ErrInvalidRole
}
