package services

import (
	"github.com/yamdb-api/config"
	"github.com/yamdb-api/repositories"
	"gorm.io/gorm"
)

// Container holds the services the HTTP layer depends on
type Container struct {
	Auth     *AuthService
	Users    *UserService
	Catalog  *CatalogService
	Reviews  *ReviewService
	Comments *CommentService
}

// NewContainer wires repositories and services on top of db
func NewContainer(db *gorm.DB, mailer Mailer, cfg config.Auth) (*Container, error) {
	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	genres := repositories.NewGenreRepository(db)
	titles := repositories.NewTitleRepository(db)
	reviews := repositories.NewReviewRepository(db)
	comments := repositories.NewCommentRepository(db)

	auth, err := NewAuthService(db, users, NewConfirmationService(users, mailer, cfg.ConfirmationCodeLength), cfg)
	if err != nil {
		return nil, err
	}

	reviewService := NewReviewService(db, titles, reviews, NewRatingAggregator(titles, reviews))

	return &Container{
		Auth:     auth,
		Users:    NewUserService(users),
		Catalog:  NewCatalogService(categories, genres, titles),
		Reviews:  reviewService,
		Comments: NewCommentService(reviewService, comments),
	}, nil
}
