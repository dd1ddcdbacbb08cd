package middleware

import (
	"locgm/internal/models"
	"locgm/internal/services"
	"locgm/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localSession = "session"

// Session loads the request's session, makes sure it carries a CSRF token and
// saves it once the rest of the chain has run.
func Session(provider *session.Provider, guard *services.CSRFGuard, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := provider.Start(c)
		if err != nil {
			log.Error().Err(err).Msg("failed to load session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Sessão indisponível",
			})
		}
		if _, err := guard.Issue(sess); err != nil {
			log.Error().Err(err).Msg("failed to issue csrf token")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Sessão indisponível",
			})
		}

		c.Locals(localSession, sess)
		chainErr := c.Next()

		if err := sess.Save(); err != nil {
			log.Error().Err(err).Str("session", sess.ID()).Msg("failed to save session")
		}
		return chainErr
	}
}

// Values returns the session loaded by Session, or nil outside of it.
func Values(c *fiber.Ctx) session.Values {
	v, _ := c.Locals(localSession).(session.Values)
	return v
}

// CurrentUser returns the logged-in user of the request.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	return session.CurrentUser(Values(c))
}

// RequireLogin rejects requests whose session holds no user.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUser(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": services.MsgUnauthenticated,
			})
		}
		return c.Next()
	}
}
