package dto

import (
	"time"

	"github.com/yamdb-api/models"
)

// CreateReviewRequest posts a review. Score bounds are checked by the service.
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewRequest patches a review
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// ReviewResponse represents a review
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pubDate"`
}

// CommentRequest posts a comment
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest patches a comment
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pubDate"`
}

// NewReviewResponse maps a review model onto its response
func NewReviewResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}

// NewCommentResponse maps a comment model onto its response
func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		Author:  comment.Author.Username,
		PubDate: comment.PubDate,
	}
}
