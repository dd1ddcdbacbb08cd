package services

import (
	"locgm/internal/models"
	"locgm/internal/session"
)

// Gatekeeper runs the checks shared by every mutating entry point:
// authenticated, then role, then CSRF token.
type Gatekeeper struct {
	csrf *CSRFGuard
}

// NewGatekeeper creates a Gatekeeper over the given guard.
func NewGatekeeper(csrf *CSRFGuard) *Gatekeeper {
	return &Gatekeeper{csrf: csrf}
}

// RequireUser admits any logged-in user presenting a valid token.
func (g *Gatekeeper) RequireUser(v session.Values, token string) (*models.User, error) {
	user, ok := session.CurrentUser(v)
	if !ok {
		return nil, gateError(KindUnauthenticated, MsgUnauthenticated)
	}
	if !g.csrf.Validate(v, token) {
		return nil, gateError(KindForbidden, MsgInvalidToken)
	}
	return user, nil
}

// RequireEmpresa admits only empresa users presenting a valid token.
// deniedMsg is reported when the role check fails.
func (g *Gatekeeper) RequireEmpresa(v session.Values, token, deniedMsg string) (*models.User, error) {
	user, ok := session.CurrentUser(v)
	if !ok {
		return nil, gateError(KindUnauthenticated, MsgUnauthenticated)
	}
	if !user.IsEmpresa() {
		return nil, gateError(KindForbidden, deniedMsg)
	}
	if !g.csrf.Validate(v, token) {
		return nil, gateError(KindForbidden, MsgInvalidToken)
	}
	return user, nil
}
