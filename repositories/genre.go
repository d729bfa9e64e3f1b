package repositories

import (
	"context"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// GenreRepository handles database operations for genres
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository instance
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// FindBySlugs retrieves every genre whose slug is listed
func (r *GenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres := make([]models.Genre, 0, len(slugs))
	if len(slugs) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Order("name asc").Find(&genres).Error
	return genres, err
}

// Create inserts a new genre into the database
func (r *GenreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return translate(r.db.WithContext(ctx).Create(genre).Error)
}

// DeleteBySlug removes a genre and its title associations
func (r *GenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return translate(err)
		}
		if err := tx.Exec("DELETE FROM genre_titles WHERE genre_id = ?", genre.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&genre).Error
	})
}
