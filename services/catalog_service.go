package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/utils"
)

// CatalogService handles categories, genres and titles
type CatalogService struct {
	categories *repositories.CategoryRepository
	genres     *repositories.GenreRepository
	titles     *repositories.TitleRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	categories *repositories.CategoryRepository,
	genres *repositories.GenreRepository,
	titles *repositories.TitleRepository,
) *CatalogService {
	return &CatalogService{categories: categories, genres: genres, titles: titles}
}

// CreateCategory adds a category
func (s *CatalogService) CreateCategory(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	if !utils.IsValidSlug(req.Slug) {
		return nil, NewValidationError("slug", "Slug may only contain letters, digits, hyphens and underscores.")
	}

	category := &models.Category{Name: strings.TrimSpace(req.Name), Slug: req.Slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, NewValidationError("slug", "Category with this slug already exists.")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logrus.WithField("slug", category.Slug).Info("Category created")
	return category, nil
}

// DeleteCategory removes a category; its titles stay, without a category
func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.categories.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("category")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	logrus.WithField("slug", slug).Info("Category deleted")
	return nil
}

// CreateGenre adds a genre
func (s *CatalogService) CreateGenre(ctx context.Context, req dto.GenreRequest) (*models.Genre, error) {
	if !utils.IsValidSlug(req.Slug) {
		return nil, NewValidationError("slug", "Slug may only contain letters, digits, hyphens and underscores.")
	}

	genre := &models.Genre{Name: strings.TrimSpace(req.Name), Slug: req.Slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, NewValidationError("slug", "Genre with this slug already exists.")
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	logrus.WithField("slug", genre.Slug).Info("Genre created")
	return genre, nil
}

// DeleteGenre removes a genre and detaches it from its titles
func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	if err := s.genres.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("genre")
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	logrus.WithField("slug", slug).Info("Genre deleted")
	return nil
}

// CreateTitle adds a title in the given category and genres
func (s *CatalogService) CreateTitle(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	verr := &ValidationError{}
	if req.Year == nil || !utils.IsValidYear(*req.Year) {
		verr.Add("year", "Year can not be in the future.")
	}
	category, err := s.resolveCategory(ctx, req.Category, verr)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, req.Genre, verr)
	if err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	title := &models.Title{
		Name:        strings.TrimSpace(req.Name),
		Year:        *req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
		Category:    category,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("failed to create title: %w", err)
	}

	logrus.WithFields(logrus.Fields{"title_id": title.ID, "name": title.Name}).Info("Title created")
	return title, nil
}

// UpdateTitle patches a title. Genres are replaced only when provided.
func (s *CatalogService) UpdateTitle(ctx context.Context, id uint, req dto.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.GetTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &ValidationError{}
	if req.Name != nil {
		title.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		if !utils.IsValidYear(*req.Year) {
			verr.Add("year", "Year can not be in the future.")
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category, verr)
		if err != nil {
			return nil, err
		}
		if category != nil {
			title.CategoryID = &category.ID
			title.Category = category
		}
	}
	var genres []models.Genre
	if req.Genre != nil {
		if genres, err = s.resolveGenres(ctx, req.Genre, verr); err != nil {
			return nil, err
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	if err := s.titles.Update(ctx, title, genres); err != nil {
		return nil, fmt.Errorf("failed to update title: %w", err)
	}
	return s.GetTitle(ctx, id)
}

// GetTitle loads a title with its category and genres
func (s *CatalogService) GetTitle(ctx context.Context, id uint) (*models.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("title")
		}
		return nil, err
	}
	return title, nil
}

func (s *CatalogService) resolveCategory(ctx context.Context, slug string, verr *ValidationError) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			verr.Add("category", fmt.Sprintf("Category %q does not exist.", slug))
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) resolveGenres(ctx context.Context, slugs []string, verr *ValidationError) ([]models.Genre, error) {
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			verr.Add("genre", fmt.Sprintf("Genre %q does not exist.", slug))
		}
	}
	return genres, nil
}
