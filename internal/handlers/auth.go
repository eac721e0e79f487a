package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/apperr"
	"restaurant/internal/middleware"
	"restaurant/internal/services"
	"restaurant/internal/session"
)

type sessionLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type cookieSettings struct {
	secure bool
}

func (s cookieSettings) set(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", s.secure, true)
}

func SessionLogin(auth *services.AuthService, sessions *session.Manager, cookies cookieSettings, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /sessionLogin"
		defer handlePanic(c, log, route)

		var req sessionLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ident, err := auth.Login(c.Request.Context(), req.IDToken)
		if err != nil {
			respondError(c, log, route, err)
			return
		}

		cookie, err := sessions.Create(c.Request.Context(), ident)
		if err != nil {
			respondError(c, log, route, apperr.Internal("could not create session", err))
			return
		}

		cookies.set(c, cookie, int(sessions.TTL().Seconds()))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Logout always clears the cookie, whether or not a session existed.
func Logout(sessions *session.Manager, cookies cookieSettings, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /logout"
		defer handlePanic(c, log, route)

		if cookie, err := c.Cookie(session.CookieName); err == nil {
			if err := sessions.Destroy(c.Request.Context(), cookie); err != nil {
				log.WithError(err).Warn("session delete failed")
			}
		}

		cookies.set(c, "", -1)
		c.Redirect(http.StatusFound, "/")
	}
}

func WhoAmI() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c)
		if !ident.Authenticated() {
			c.JSON(http.StatusOK, gin.H{"uid": nil, "email": nil, "user_id": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": ident.UID, "email": ident.Email, "user_id": ident.UserID})
	}
}
