package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/actorctx"
	"github.com/geocoder89/mesto/internal/apperr"
)

const (
	MsgAuthRequired = "authentication required"
	MsgInvalidToken = "invalid token"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth verifies the bearer token and attaches the caller's identity.
// It never touches the user store: a valid token is enough.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			_ = c.Error(apperr.Unauthorized(MsgAuthRequired))
			c.Abort()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			_ = c.Error(apperr.Unauthorized(MsgAuthRequired))
			c.Abort()
			return
		}

		userID, err := m.jwt.Verify(raw)
		if err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindUnauthorized, MsgInvalidToken, err))
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}

// Optional helper so handlers don't need to know the magic key.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
