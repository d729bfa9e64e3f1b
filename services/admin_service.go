package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/utils"
	"gorm.io/gorm"
)

// AdminService backs the operator commands
type AdminService struct {
	db     *gorm.DB
	users  *repositories.UserRepository
	issuer *ConfirmationService
}

// NewAdminService creates a new admin service instance
func NewAdminService(db *gorm.DB, users *repositories.UserRepository, issuer *ConfirmationService) *AdminService {
	return &AdminService{db: db, users: users, issuer: issuer}
}

// CreateSuperuser adds an admin superuser, or promotes the user already holding
// this (username, email) pair, and sends them a confirmation code
func (s *AdminService) CreateSuperuser(ctx context.Context, username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if !utils.IsValidUsername(username) {
		return nil, NewValidationError("username", "Username is invalid.")
	}
	if email == "" {
		return nil, NewValidationError("email", "Email is required.")
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		existing, err := users.FindByUsername(ctx, username)
		switch {
		case err == nil:
			if existing.Email != email {
				return NewValidationError("email", "Username is registered with another email.")
			}
			existing.Role = models.RoleAdmin
			existing.IsSuperuser = true
			if err := users.Update(ctx, existing); err != nil {
				return err
			}
			user = existing
		case errors.Is(err, repositories.ErrNotFound):
			if taken, err := users.ExistsByEmail(ctx, email, 0); err != nil {
				return err
			} else if taken {
				return NewValidationError("email", "Email must be unique.")
			}
			user = &models.User{
				Username:    username,
				Email:       email,
				Role:        models.RoleAdmin,
				IsSuperuser: true,
			}
			if err := users.Create(ctx, user); err != nil {
				return err
			}
		default:
			return err
		}

		_, err = s.issuer.WithTx(tx).Issue(ctx, user)
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Failed to create superuser")
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}
	return user, nil
}
