package repositories

import (
	"context"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindBySlug retrieves a category by slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// Create inserts a new category into the database
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error)
}

// DeleteBySlug removes a category. Titles in it are detached, not deleted.
func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("slug = ?", slug).First(&category).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&models.Title{}).Where("category_id = ?", category.ID).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
