package handlers

import (
	"errors"
	"net/http"

	"daily_diet/internal/models"
	"daily_diet/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookieName carries the opaque session token on every
	// authenticated request.
	sessionCookieName = "sessionId"

	ctxIdentityKey = "identity"

	errUnauthorized = "Unauthorized."
)

// sessionMiddleware resolves the sessionId cookie to an identity once per
// request and stores it in the Gin context. Handlers behind it reuse the
// identity instead of re-reading the cookie.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errUnauthorized,
		})
		return
	}

	identity, err := h.services.Sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrUnauthenticated) {
			if h.log != nil {
				h.log.Errorw("session_resolve_failed", "err", err)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to resolve session",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": errUnauthorized,
		})
		return
	}

	c.Set(ctxIdentityKey, identity)
	c.Next()
}

// identityFrom returns the identity stored by sessionMiddleware. Only valid
// on routes behind it.
func identityFrom(c *gin.Context) models.Identity {
	v, _ := c.Get(ctxIdentityKey)
	identity, _ := v.(models.Identity)
	return identity
}
