package middleware

// identity.go defines helper functions shared across middleware files.
// It provides an adminID extraction function that reads the identifier
// stored by JWTAuth.  When no token is present, "guest" is returned so
// rate-limit and cache keys still have a stable identity component.

import (
	"github.com/labstack/echo/v4"
)

// adminID extracts the authenticated administrator's identifier from
// context.  It returns "guest" when no administrator is authenticated.
func adminID(c echo.Context) string {
	if v, ok := c.Get("admin_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
