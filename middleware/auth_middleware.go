package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/services"
)

const callerKey = "caller"

// ErrMalformedAuthHeader is returned for an Authorization header that is not "Bearer <token>"
var ErrMalformedAuthHeader = errors.New("authorization header must be 'Bearer <token>'")

// Authenticator resolves an access token to its user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware resolves the caller of every request.
// Without an Authorization header the caller is anonymous; a bad token is rejected with 401.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			logrus.WithError(err).Warn("Auth middleware: malformed Authorization header")
			httpx.Error(c, http.StatusUnauthorized, "Invalid authorization header", nil)
			return
		}
		if tokenString == "" {
			c.Set(callerKey, policy.Caller{})
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				httpx.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
				return
			}
			httpx.HandleServiceError(c, err)
			return
		}

		c.Set(callerKey, policy.CallerFromUser(user))
		c.Set("userId", user.ID)
		c.Set("role", string(user.Role))
		logrus.WithField("user_id", user.ID).Debug("Auth middleware: user authenticated")
		c.Next()
	}
}

// CallerFrom returns the caller resolved by AuthMiddleware, anonymous if none
func CallerFrom(c *gin.Context) policy.Caller {
	if value, ok := c.Get(callerKey); ok {
		if caller, ok := value.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Caller{}
}

// extractToken returns an empty token when no Authorization header is sent
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMalformedAuthHeader
	}
	return parts[1], nil
}
