package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/types"
)

const (
	// ContextUserID is the gin context key holding the caller's uuid.UUID
	ContextUserID = "user_id"
	// SessionCookie carries the session token for browser clients without an Authorization header
	SessionCookie = "session_token"
)

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ResolveSession returns the identity behind the request's bearer token or session
// cookie. The header wins when both are present.
func ResolveSession(r *http.Request, validator TokenValidator) (*types.TokenClaims, bool) {
	token := ""
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, value, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return nil, false
		}
		token = strings.TrimSpace(value)
	} else if cookie, err := r.Cookie(SessionCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		return nil, false
	}

	claims, err := validator.ValidateToken(token)
	if err != nil || claims.UserID == uuid.Nil {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware rejects requests without a resolvable session
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ResolveSession(c.Request, validator)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperror.NewUnauthorized("Authentication required").ToJSON())
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the identity stored by AuthMiddleware
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
