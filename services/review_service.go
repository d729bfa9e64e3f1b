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
	"gorm.io/gorm"
)

// ReviewService handles reviews of titles
type ReviewService struct {
	db      *gorm.DB
	titles  *repositories.TitleRepository
	reviews *repositories.ReviewRepository
	rating  *RatingAggregator
}

// NewReviewService creates a new review service instance
func NewReviewService(
	db *gorm.DB,
	titles *repositories.TitleRepository,
	reviews *repositories.ReviewRepository,
	rating *RatingAggregator,
) *ReviewService {
	return &ReviewService{db: db, titles: titles, reviews: reviews, rating: rating}
}

// List retrieves the reviews of a title
func (s *ReviewService) List(ctx context.Context, titleID uint, query dto.PageQuery) ([]models.Review, int64, error) {
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	page := query.Normalize()
	return s.reviews.ListByTitle(ctx, titleID, repositories.Page{Page: page.Page, PageSize: page.PageSize})
}

// Get retrieves one review of a title
func (s *ReviewService) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("review")
		}
		return nil, err
	}
	return review, nil
}

// Create posts the caller's review of a title and refreshes the title rating.
// A second review by the same author for the same title is a validation error.
func (s *ReviewService) Create(ctx context.Context, caller policy.Caller, titleID uint, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := DecisionError(policy.Decide(caller, http.MethodPost, policy.Content, nil)); err != nil {
		return nil, err
	}
	if err := s.ensureTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if req.Score == nil {
		return nil, NewValidationError("score", "This field is required.")
	}
	if err := validateScore(*req.Score); err != nil {
		return nil, err
	}

	logCtx := logrus.WithFields(logrus.Fields{"title_id": titleID, "user_id": caller.UserID})

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: caller.UserID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := s.reviews.WithTx(tx)

		exists, err := reviews.ExistsByAuthorAndTitle(ctx, caller.UserID, titleID)
		if err != nil {
			return err
		}
		if exists {
			return duplicateReview()
		}
		if err := reviews.Create(ctx, review); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEntry) {
				return duplicateReview()
			}
			return err
		}

		_, err = s.rating.WithTx(tx).OnReviewCreated(ctx, titleID)
		return err
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logCtx.Warn("Duplicate review rejected")
			return nil, err
		}
		logCtx.WithError(err).Error("Failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	review.Author = models.User{ID: caller.UserID, Username: caller.Username}
	logCtx.WithField("review_id", review.ID).Info("Review created")
	return review, nil
}

// Update patches a review. Allowed for its author, moderators and admins.
func (s *ReviewService) Update(ctx context.Context, caller policy.Caller, titleID, reviewID uint, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorizeContent(caller, http.MethodPatch, review.AuthorID); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := validateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes a review and its comments. Allowed for its author, moderators and admins.
func (s *ReviewService) Delete(ctx context.Context, caller policy.Caller, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorizeContent(caller, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("review")
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	logrus.WithFields(logrus.Fields{"review_id": review.ID, "user_id": caller.UserID}).Info("Review deleted")
	return nil
}

func (s *ReviewService) ensureTitle(ctx context.Context, titleID uint) error {
	exists, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("title")
	}
	return nil
}

func validateScore(score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return NewValidationError("score", fmt.Sprintf("Score must be between %d and %d.", models.MinScore, models.MaxScore))
	}
	return nil
}

func duplicateReview() error {
	return NewValidationError("review", "You can leave only one review for a title.")
}
