package repositories

import (
	"context"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// TitleRepository handles database operations for titles
type TitleRepository struct {
	db *gorm.DB
}

// NewTitleRepository creates a new title repository instance
func NewTitleRepository(db *gorm.DB) *TitleRepository {
	return &TitleRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *TitleRepository) WithTx(tx *gorm.DB) *TitleRepository {
	return &TitleRepository{db: tx}
}

// FindByID retrieves a title with its category and genres
func (r *TitleRepository) FindByID(ctx context.Context, id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		First(&title, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &title, nil
}

// Exists checks if a title exists
func (r *TitleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a title together with its genre associations
func (r *TitleRepository) Create(ctx context.Context, title *models.Title) error {
	return translate(r.db.WithContext(ctx).Omit("Genres.*", "Category").Create(title).Error)
}

// Update saves the scalar fields of a title and, when genres is non-nil, replaces its genres
func (r *TitleRepository) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Title{ID: title.ID}).Select("name", "year", "description", "category_id").Updates(map[string]interface{}{
			"name":        title.Name,
			"year":        title.Year,
			"description": title.Description,
			"category_id": title.CategoryID,
		}).Error
		if err != nil {
			return translate(err)
		}
		switch {
		case genres == nil:
		case len(genres) == 0:
			if err := tx.Model(title).Association("Genres").Clear(); err != nil {
				return err
			}
		default:
			if err := tx.Model(title).Omit("Genres.*").Association("Genres").Replace(genres); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateRating stores the cached mean review score of a title
func (r *TitleRepository) UpdateRating(ctx context.Context, id uint, rating *float64) error {
	return translate(r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Update("rating", rating).Error)
}
