package repositories

import (
	"context"
	"database/sql"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

// FindByID retrieves a review of the given title, with its author
func (r *ReviewRepository) FindByID(ctx context.Context, titleID, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

// ExistsByAuthorAndTitle checks if the author already reviewed the title
func (r *ReviewRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID, titleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("author_id = ? AND title_id = ?", authorID, titleID).
		Count(&count).Error
	return count > 0, err
}

// ListByTitle retrieves the reviews of a title ordered by publication date
func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID uint, page Page) ([]models.Review, int64, error) {
	var reviews []models.Review
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Session(&gorm.Session{})
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Preload("Author").Order("pub_date asc, id asc"), page).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, totalCount, nil
}

// CountByTitle counts the reviews of a title
func (r *ReviewRepository) CountByTitle(ctx context.Context, titleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&count).Error
	return count, err
}

// AverageScore returns the mean score of a title's reviews, or nil when it has none
func (r *ReviewRepository) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	var avg sql.NullFloat64
	row := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// Create inserts a new review into the database
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Omit("Title", "Author").Create(review).Error)
}

// Update saves the text and score of a review
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Model(&models.Review{ID: review.ID}).Select("text", "score").Updates(map[string]interface{}{
		"text":  review.Text,
		"score": review.Score,
	}).Error)
}

// Delete removes a review and its comments
func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
