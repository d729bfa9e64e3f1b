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

// CatalogController handles category, genre and title writes
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes
func (cc *CatalogController) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("", middleware.Authorize(policy.Catalog))
	{
		catalog.POST("/categories", cc.CreateCategory)
		catalog.DELETE("/categories/:slug", cc.DeleteCategory)
		catalog.POST("/genres", cc.CreateGenre)
		catalog.DELETE("/genres/:slug", cc.DeleteGenre)
		catalog.POST("/titles", cc.CreateTitle)
		catalog.PATCH("/titles/:titleId", cc.UpdateTitle)
	}
}

// CreateCategory adds a category
func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	category, err := cc.catalogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewCategoryResponse(category))
}

// DeleteCategory removes a category, leaving its titles uncategorized
func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	if err := cc.catalogService.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.NoContent(c)
}

// CreateGenre adds a genre
func (cc *CatalogController) CreateGenre(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	genre, err := cc.catalogService.CreateGenre(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewGenreResponse(genre))
}

// DeleteGenre removes a genre
func (cc *CatalogController) DeleteGenre(c *gin.Context) {
	if err := cc.catalogService.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.NoContent(c)
}

// CreateTitle adds a title
func (cc *CatalogController) CreateTitle(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	title, err := cc.catalogService.CreateTitle(c.Request.Context(), req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusCreated, dto.NewTitleResponse(title))
}

// UpdateTitle patches a title
func (cc *CatalogController) UpdateTitle(c *gin.Context) {
	titleID, ok := idParam(c, "titleId", "Title")
	if !ok {
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	title, err := cc.catalogService.UpdateTitle(c.Request.Context(), titleID, req)
	if err != nil {
		httpx.HandleServiceError(c, err)
		return
	}
	httpx.Success(c, http.StatusOK, dto.NewTitleResponse(title))
}
