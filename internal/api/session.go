package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"qrstudio/internal/config"
)

const sessionLocal = "session_id"

// SessionMiddleware assigns every client a session cookie so scan history can
// be kept per session without authentication
func SessionMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cfg.SessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.SessionCookie,
				Value:    sid,
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}
		c.Locals(sessionLocal, sid)
		return c.Next()
	}
}

// sessionID returns the session identity set by the middleware
func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionLocal).(string)
	return sid
}
