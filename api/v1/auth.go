package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/services"
)

// AuthController handles sign-up and token exchange
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers auth routes
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", ac.SignUp)
		auth.POST("/token", ac.Token)
	}
}

// SignUp registers a user, or resends the code to an existing one, and emails a confirmation code
func (ac *AuthController) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	user, err := ac.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}

	httpx.Success(c, http.StatusOK, dto.NewSignUpResponse(user))
}

// Token exchanges a confirmation code for an access token
func (ac *AuthController) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	token, err := ac.authService.ExchangeToken(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}

	httpx.Success(c, http.StatusOK, token)
}
