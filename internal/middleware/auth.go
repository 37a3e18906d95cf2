package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/field-service-api/internal/auth"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
)

const (
	ContextPrincipal = "principal"
	SessionCookie    = "session"
)

// AuthMiddleware requires a valid bearer token or session cookie and stores
// the caller as an access.Principal on the context.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			httperr.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		p, err := issuer.Parse(tokenString)
		if err != nil {
			httperr.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if p, err := issuer.Parse(tokenString); err == nil {
				c.Set(ContextPrincipal, p)
			}
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
