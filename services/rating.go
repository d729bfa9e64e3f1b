package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/repositories"
	"gorm.io/gorm"
)

// RatingAggregator keeps the cached rating of a title equal to the mean of its review scores
type RatingAggregator struct {
	titles  *repositories.TitleRepository
	reviews *repositories.ReviewRepository
}

// NewRatingAggregator creates a new rating aggregator
func NewRatingAggregator(titles *repositories.TitleRepository, reviews *repositories.ReviewRepository) *RatingAggregator {
	return &RatingAggregator{titles: titles, reviews: reviews}
}

// WithTx returns an aggregator reading and writing through tx
func (a *RatingAggregator) WithTx(tx *gorm.DB) *RatingAggregator {
	return &RatingAggregator{titles: a.titles.WithTx(tx), reviews: a.reviews.WithTx(tx)}
}

// OnReviewCreated recomputes the rating of a title. It must run after the new
// review row is written so that its score is part of the mean.
//
// Review updates and deletions do not call it, so the rating can go stale
// after them until the next review is created.
func (a *RatingAggregator) OnReviewCreated(ctx context.Context, titleID uint) (*float64, error) {
	rating, err := a.reviews.AverageScore(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("failed to average scores: %w", err)
	}
	if err := a.titles.UpdateRating(ctx, titleID, rating); err != nil {
		return nil, fmt.Errorf("failed to store rating: %w", err)
	}

	logrus.WithFields(logrus.Fields{"title_id": titleID, "rating": rating}).Debug("Title rating updated")
	return rating, nil
}
