package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/httpx"
	"github.com/yamdb-api/middleware"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/services"
)

// UserController handles the profile endpoints and the admin user directory
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// RegisterRoutes registers user routes
func (uc *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")

	me := users.Group("/me", middleware.Authorize(policy.Profile))
	{
		me.GET("", uc.GetProfile)
		me.PATCH("", uc.UpdateProfile)
	}

	directory := users.Group("", middleware.Authorize(policy.UserDirectory))
	{
		directory.GET("", uc.ListUsers)
		directory.POST("", uc.CreateUser)
		directory.GET("/:username", uc.GetUser)
		directory.PATCH("/:username", uc.UpdateUser)
		directory.DELETE("/:username", uc.DeleteUser)
	}
}

// GetProfile returns the caller's own record
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.userService.GetProfile(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile patches the caller's own record; a submitted role is ignored
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	user, err := uc.userService.UpdateProfile(c.Request.Context(), middleware.CallerFrom(c), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewUserResponse(user))
}

// ListUsers retrieves users, optionally filtered by username
func (uc *UserController) ListUsers(c *gin.Context) {
	var query dto.UserSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpx.BindError(c, err)
		return
	}
	query.PageQuery = query.PageQuery.Normalize()

	users, total, err := uc.userService.List(c.Request.Context(), query)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}

	results := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.NewUserResponse(&users[i]))
	}
	httpx.Success(c, http.StatusOK, dto.NewListResponse(results, total, query.PageQuery))
}

// CreateUser adds a user
func (uc *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	user, err := uc.userService.Create(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewUserResponse(user))
}

// GetUser retrieves a user by username
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser patches a user, role included
func (uc *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	user, err := uc.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser removes a user with their reviews and comments
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.NoContent(c)
}
