package handlers

import (
	"errors"
	"net/http"

	"daily_diet/internal/service"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type createSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  createUserRequest  true  "Name and email"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *Handler) signUp(c *gin.Context) {
	var input createUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Register(c.Request.Context(), input.Name, input.Email)
	if err != nil {
		// Deliberately generic: a duplicate email must not read differently
		// from any other creation failure, or emails become enumerable.
		if h.log != nil {
			h.log.Infow("user_create_failed", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": u.ID})
}

// @Summary      Open a session
// @Description  Authenticates by email only and sets the sessionId cookie. Re-authenticating replaces the previous token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  createSessionRequest  true  "Email"
// @Success      200
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /users/session [post]
func (h *Handler) createSession(c *gin.Context) {
	var input createSessionRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Sessions.Issue(c.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		if h.log != nil {
			h.log.Errorw("session_issue_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session"})
		return
	}

	c.SetCookie(sessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Status(http.StatusOK)
}
