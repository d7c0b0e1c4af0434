package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-Id"

// LocalsKey is the Fiber locals key the logger reads the ray id from.
const LocalsKey = "ray_id"

// New creates a middleware that assigns every request a ray id.
// An incoming X-Ray-Id header is honored so upstream proxies can
// correlate, otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}

// FromCtx returns the ray id assigned to the request, or "" if the
// middleware did not run.
func FromCtx(c *fiber.Ctx) string {
	if rid, ok := c.Locals(LocalsKey).(string); ok {
		return rid
	}
	return ""
}
