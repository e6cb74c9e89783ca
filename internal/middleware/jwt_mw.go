package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHeader carries the session token in both directions.
const AuthHeader = "x-auth"

const (
	AuthUserKey  = "authUser"
	AuthTokenKey = "authToken"
)

// Authenticator resolves a presented token to a live user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware creates a middleware that resolves the x-auth header to a
// user. Unauthenticated requests are aborted with 401 and an empty body.
func AuthMiddleware(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{})
				return
			}
			logger.ErrorContext(c.Request.Context(), "failed to authenticate request", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// Set user information in context
		c.Set(AuthUserKey, user)
		c.Set(AuthTokenKey, token)

		c.Next()
	}
}

// GetAuthUser returns the user resolved by AuthMiddleware
func GetAuthUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok && user != nil
}

// GetAuthToken returns the token the request was authenticated with
func GetAuthToken(c *gin.Context) (string, bool) {
	val, exists := c.Get(AuthTokenKey)
	if !exists {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
