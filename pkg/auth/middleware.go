package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDKey contextKey = "fintrack-user-id"
	emailKey  contextKey = "fintrack-user-email"
)

var ErrTokenMissing = errors.New("authentication required")

type httpError struct {
	Error string `json:"error"`
}

// Authenticate returns a middleware that requires a bearer token.
//
// Requests without a token are rejected with 401, requests with an
// invalid or expired token with 403.
func Authenticate(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)

		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrTokenMissing.Error()})
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: err.Error()})
			return
		}

		c.Set(string(userIDKey), claims.UserID)
		c.Set(string(emailKey), claims.Email)
		c.Next()
	}
}

// UserID returns the ID of the authenticated user. It is 0 outside of Authenticate.
func UserID(c *gin.Context) uint {
	return c.GetUint(string(userIDKey))
}

// Email returns the e-mail address of the authenticated user.
func Email(c *gin.Context) string {
	return c.GetString(string(emailKey))
}
