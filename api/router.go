// Package api builds the gin engine serving the HTTP API.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/yamdb-api/api/v1"
	"github.com/yamdb-api/config"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/middleware"
	"github.com/yamdb-api/services"
)

// NewRouter creates the engine with global middleware and the /api/v1 routes
func NewRouter(cfg *config.Config, svc *services.Container) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	router.NoRoute(func(c *gin.Context) {
		httpx.Error(c, http.StatusNotFound, "Not found", nil)
	})
	router.NoMethod(func(c *gin.Context) {
		httpx.Error(c, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	v1.RegisterRoutes(router.Group("/api/v1"), svc)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
