package dto

import "github.com/yamdb-api/models"

// CategoryRequest creates a category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// CategoryResponse represents a category
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreRequest creates a genre
type GenreRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50"`
}

// GenreResponse represents a genre
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateTitleRequest creates a title. Category and genres are referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        *int     `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genre       []string `json:"genre"`
}

// UpdateTitleRequest patches a title. A nil Genre leaves the genres unchanged.
type UpdateTitleRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=256"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// TitleResponse represents a title with its category, genres and rating
type TitleResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// NewCategoryResponse maps a category model onto its response
func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{Name: category.Name, Slug: category.Slug}
}

// NewGenreResponse maps a genre model onto its response
func NewGenreResponse(genre *models.Genre) GenreResponse {
	return GenreResponse{Name: genre.Name, Slug: genre.Slug}
}

// NewTitleResponse maps a title model onto its response
func NewTitleResponse(title *models.Title) TitleResponse {
	response := TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      title.Rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(title.Genres)),
	}
	for i := range title.Genres {
		response.Genre = append(response.Genre, NewGenreResponse(&title.Genres[i]))
	}
	if title.Category != nil {
		category := NewCategoryResponse(title.Category)
		response.Category = &category
	}
	return response
}
