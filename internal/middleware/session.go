package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/config"
	"restaurant/internal/models"
	"restaurant/internal/session"
)

const identityKey = "identity"

type SessionResolver interface {
	Resolve(ctx context.Context, cookie string) (models.Identity, error)
}

// LoadSession resolves the session cookie, if any, and stores the identity on
// the context. It never rejects a request; the guards below do that.
func LoadSession(resolver SessionResolver, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		ident, err := resolver.Resolve(c.Request.Context(), cookie)
		switch {
		case err == nil:
			c.Set(identityKey, ident)
		case !errors.Is(err, session.ErrNoSession):
			log.WithError(err).Warn("session lookup failed")
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity loaded for this request, or the zero
// identity for anonymous callers.
func CurrentIdentity(c *gin.Context) models.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}
	}
	ident, _ := value.(models.Identity)
	return ident
}

func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login required"})
			return
		}
		c.Next()
	}
}

func RequireAdmin(admins config.EmailSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if !ident.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login required"})
			return
		}
		if !admins.Contains(ident.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin only"})
			return
		}
		c.Next()
	}
}
