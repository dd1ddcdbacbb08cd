// Package session keeps per-browser state on the server, keyed by a session id
// carried in a session-only cookie.
package session

import (
	"locgm/internal/models"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	CookieName = "locgm_session"

	userKey = "user"
)

// Values is the state of one session. *fibersession.Session satisfies it.
type Values interface {
	ID() string
	Get(key string) interface{}
	Set(key string, val interface{})
}

// Config holds the cookie settings of the session store.
type Config struct {
	Secure bool
}

// Provider loads and persists sessions for requests.
type Provider struct {
	store *fibersession.Store
}

// NewProvider creates a Provider backed by Fiber's in-memory session storage.
func NewProvider(cfg Config) *Provider {
	store := fibersession.New(fibersession.Config{
		KeyLookup:         "cookie:" + CookieName,
		CookieHTTPOnly:    true,
		CookieSecure:      cfg.Secure,
		CookieSameSite:    fiber.CookieSameSiteLaxMode,
		CookieSessionOnly: true,
		KeyGenerator:      uuid.NewString,
	})
	store.RegisterType(models.User{})
	return &Provider{store: store}
}

// Start returns the session of the request, creating one if needed.
func (p *Provider) Start(c *fiber.Ctx) (*fibersession.Session, error) {
	return p.store.Get(c)
}

// CurrentUser returns the profile stored in the session.
func CurrentUser(v Values) (*models.User, bool) {
	if v == nil {
		return nil, false
	}
	user, ok := v.Get(userKey).(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// Regenerate moves the session to a fresh id, keeping its values, when the
// implementation supports it.
func Regenerate(v Values) error {
	if r, ok := v.(interface{ Regenerate() error }); ok {
		return r.Regenerate()
	}
	return nil
}

// SetUser stores a profile snapshot in the session, replacing any previous one.
func SetUser(v Values, user *models.User) {
	v.Set(userKey, *user)
}
