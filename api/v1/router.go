package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/yamdb-api/middleware"
	"github.com/yamdb-api/services"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, svc *services.Container) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Every other route resolves the caller first; anonymous callers pass through
	api := router.Group("")
	api.Use(middleware.AuthMiddleware(svc.Auth))

	NewAuthController(svc.Auth).RegisterRoutes(api)
	NewUserController(svc.Users).RegisterRoutes(api)
	NewCatalogController(svc.Catalog).RegisterRoutes(api)
	NewReviewController(svc.Reviews, svc.Comments).RegisterRoutes(api)
}
