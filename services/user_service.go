package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/policy"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/utils"
)

// UserService handles the user directory and self-service profiles
type UserService struct {
	users *repositories.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the caller's own record
func (s *UserService) GetProfile(ctx context.Context, caller policy.Caller) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.findByID(ctx, caller.UserID)
}

// UpdateProfile patches the caller's own record. The role can not be changed this way.
func (s *UserService) UpdateProfile(ctx context.Context, caller policy.Caller, req dto.UpdateProfileRequest) (*models.User, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	user, err := s.findByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, user, req.AsUserUpdate())
}

// List retrieves users ordered by email, optionally filtered by username
func (s *UserService) List(ctx context.Context, query dto.UserSearchQuery) ([]models.User, int64, error) {
	page := query.PageQuery.Normalize()
	return s.users.List(ctx, query.Search, repositories.Page{Page: page.Page, PageSize: page.PageSize})
}

// Get retrieves a user by username
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}
	return user, nil
}

// Create adds a user on behalf of an administrator
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.TrimSpace(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	verr := &ValidationError{}
	if !role.Valid() {
		verr.Add("role", "Invalid role.")
	}
	if err := s.checkIdentity(ctx, user, verr); err != nil {
		return nil, err
	}
	if !verr.Empty() {
		return nil, verr
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, NewValidationError("username", "Username or email already registered.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username, "role": user.Role}).Info("User created")
	return user, nil
}

// Update patches a user on behalf of an administrator, role included
func (s *UserService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, user, req)
}

// Delete removes a user with their reviews and comments
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound("user")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User deleted")
	return nil
}

func (s *UserService) applyUpdate(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*models.User, error) {
	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	verr := &ValidationError{}
	if req.Role != nil {
		if !req.Role.Valid() {
			verr.Add("role", "Invalid role.")
		}
		user.Role = *req.Role
	}
	if req.Username != nil || req.Email != nil {
		if err := s.checkIdentity(ctx, user, verr); err != nil {
			return nil, err
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return nil, NewValidationError("username", "Username or email already registered.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// checkIdentity validates the username format and the uniqueness of username
// and email against every other user
func (s *UserService) checkIdentity(ctx context.Context, user *models.User, verr *ValidationError) error {
	if !utils.IsValidUsername(user.Username) {
		verr.Add("username", "Username is invalid.")
	} else if taken, err := s.users.ExistsByUsername(ctx, user.Username, user.ID); err != nil {
		return err
	} else if taken {
		verr.Add("username", "Username must be unique.")
	}

	if user.Email == "" {
		verr.Add("email", "Email is required.")
	} else if taken, err := s.users.ExistsByEmail(ctx, user.Email, user.ID); err != nil {
		return err
	} else if taken {
		verr.Add("email", "Email must be unique.")
	}
	return nil
}

func (s *UserService) findByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}
	return user, nil
}
