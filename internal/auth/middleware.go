package auth

import (
	"context"
	"net/http"
	"strings"

	dom "github.com/juarodriguezg/Backend-FilmStack/internal/domain"

	"github.com/gin-gonic/gin"
)

const contextKeyUserID = "user_id"

// UserLookup resolves a user id to a user. Tokens referencing deleted users
// must not authenticate.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// UserIDFromContext returns the current user ID set by RequireAuth. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RequireAuth returns a middleware that resolves the Authorization bearer
// token into a user identity. Missing, malformed or expired tokens, and tokens
// for nonexistent users, all abort with 401.
func RequireAuth(tokens *TokenService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		if _, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil {
			abortUnauthorized(c)
			return
		}
		c.Set(contextKeyUserID, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "invalid or expired token",
	})
}
