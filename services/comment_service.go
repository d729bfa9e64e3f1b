package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/repositories"
)

// CommentService handles comments on reviews
type CommentService struct {
	reviews  *ReviewService
	comments *repositories.CommentRepository
}

// NewCommentService creates a new comment service instance
func NewCommentService(reviews *ReviewService, comments *repositories.CommentRepository) *CommentService {
	return &CommentService{reviews: reviews, comments: comments}
}

// List retrieves the comments of a review
func (s *CommentService) List(ctx context.Context, titleID, reviewID uint, query dto.PageQuery) ([]models.Comment, int64, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	page := query.Normalize()
	return s.comments.ListByReview(ctx, reviewID, repositories.Page{Page: page.Page, PageSize: page.PageSize})
}

// Get retrieves one comment of a review
func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("comment")
		}
		return nil, err
	}
	return comment, nil
}

// Create posts the caller's comment on a review
func (s *CommentService) Create(ctx context.Context, caller policy.Caller, titleID, reviewID uint, req dto.CommentRequest) (*models.Comment, error) {
	if err := DecisionError(policy.Decide(caller, http.MethodPost, policy.Content, nil)); err != nil {
		return nil, err
	}
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{ReviewID: reviewID, AuthorID: caller.UserID, Text: req.Text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.Author = models.User{ID: caller.UserID, Username: caller.Username}
	logrus.WithFields(logrus.Fields{"comment_id": comment.ID, "review_id": reviewID, "user_id": caller.UserID}).Info("Comment created")
	return comment, nil
}

// Update patches a comment. Allowed for its author, moderators and admins.
func (s *CommentService) Update(ctx context.Context, caller policy.Caller, titleID, reviewID, commentID uint, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeContent(caller, http.MethodPatch, comment.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
		if err := s.comments.UpdateText(ctx, comment); err != nil {
			return nil, fmt.Errorf("failed to update comment: %w", err)
		}
	}
	return comment, nil
}

// Delete removes a comment. Allowed for its author, moderators and admins.
func (s *CommentService) Delete(ctx context.Context, caller policy.Caller, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorizeContent(caller, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("comment")
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logrus.WithFields(logrus.Fields{"comment_id": comment.ID, "user_id": caller.UserID}).Info("Comment deleted")
	return nil
}
