package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/policy"
)

// Authorize applies the coarse access rules of a resource class.
// It must run after AuthMiddleware. Object-level checks stay in the services.
func Authorize(class policy.ResourceClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		decision := policy.Decide(caller, c.Request.Method, class, nil)

		switch decision {
		case policy.Allow:
			c.Next()
			return
		case policy.DenyUnauthenticated:
			httpx.Error(c, http.StatusUnauthorized, "Authentication credentials were not provided", nil)
		case policy.DenyMethodNotAllowed:
			httpx.Error(c, http.StatusMethodNotAllowed, "Method not allowed", nil)
		default:
			httpx.Error(c, http.StatusForbidden, "You do not have permission to perform this action", nil)
		}

		logrus.WithFields(logrus.Fields{
			"user_id":  caller.UserID,
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"class":    class.String(),
			"decision": decision.String(),
		}).Warn("Request denied")
	}
}
