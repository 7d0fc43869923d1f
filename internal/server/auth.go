package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/solobill/solobill/internal/userctx"
)

type loginRequest struct {
	UserID string `json:"user_id"`
}

// Login issues a session for a user. Identity verification is handled
// upstream; this endpoint only mints the session.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		AbortWithError(c, newValidationError("user_id", "invalid_user", "invalid user id"))
		return
	}

	session, err := s.authsvc.Issue(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt) / time.Second)
	c.SetCookie(sessionCookieName, session.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	}})
}

func (s *Server) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (s *Server) Me(c *gin.Context) {
	userID, ok := userctx.UserIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": userID.String()}})
}
