package repositories

import (
	"context"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// FindByID retrieves a comment of the given review, with its author
func (r *CommentRepository) FindByID(ctx context.Context, reviewID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("review_id = ?", reviewID).
		First(&comment, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// ListByReview retrieves the comments of a review ordered by publication date
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID uint, page Page) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.Comment{}).Where("review_id = ?", reviewID).Session(&gorm.Session{})
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Preload("Author").Order("pub_date asc, id asc"), page).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, totalCount, nil
}

// Create inserts a new comment into the database
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

// UpdateText saves the text of a comment
func (r *CommentRepository) UpdateText(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Model(&models.Comment{ID: comment.ID}).Update("text", comment.Text).Error)
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
