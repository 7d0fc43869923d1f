package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/solobill/solobill/internal/userctx"
)

const sessionCookieName = "solobill_session"

// AuthRequired resolves the session token from the Authorization header
// or the session cookie and stamps the user onto the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if sid, err := c.Cookie(sessionCookieName); err == nil {
				token = strings.TrimSpace(sid)
			}
		}
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := userctx.WithUserID(c.Request.Context(), session.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
