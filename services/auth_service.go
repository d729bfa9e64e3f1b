package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/config"
	"github.com/yamdb-api/dto"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/utils"
	"gorm.io/gorm"
)

// AuthService handles sign-up, confirmation code exchange and access tokens
type AuthService struct {
	db            *gorm.DB
	users         *repositories.UserRepository
	issuer        *ConfirmationService
	jwtSecret     []byte
	tokenLifetime time.Duration
}

// NewAuthService creates a new auth service instance
func NewAuthService(db *gorm.DB, users *repositories.UserRepository, issuer *ConfirmationService, cfg config.Auth) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	lifetime := cfg.AccessTokenLifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &AuthService{
		db:            db,
		users:         users,
		issuer:        issuer,
		jwtSecret:     []byte(cfg.JWTSecret),
		tokenLifetime: lifetime,
	}, nil
}

// SignUp registers a user and emails a confirmation code.
//
// Checks run in a fixed order: an exact (email, username) match is a resend,
// then email uniqueness, then username uniqueness, then the username format.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		issuer := s.issuer.WithTx(tx)

		existing, err := users.FindByEmailAndUsername(ctx, email, username)
		if err == nil {
			user = existing
			_, err = issuer.Issue(ctx, user)
			return err
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if taken, err := users.ExistsByEmail(ctx, email, 0); err != nil {
			return err
		} else if taken {
			return NewValidationError("email", "Email must be unique.")
		}
		if taken, err := users.ExistsByUsername(ctx, username, 0); err != nil {
			return err
		} else if taken {
			return NewValidationError("username", "Username must be unique.")
		}
		if !utils.IsValidUsername(username) {
			return NewValidationError("username", "Username is invalid.")
		}

		user = &models.User{Email: email, Username: username, Role: models.RoleUser}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEntry) {
				return NewValidationError("username", "Username or email already registered.")
			}
			return err
		}
		_, err = issuer.Issue(ctx, user)
		return err
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logCtx.WithError(err).Warn("Sign-up rejected")
			return nil, err
		}
		logCtx.WithError(err).Error("Sign-up failed")
		return nil, fmt.Errorf("sign-up failed: %w", err)
	}

	logCtx.WithField("user_id", user.ID).Info("Sign-up accepted, confirmation code sent")
	return user, nil
}

// ExchangeToken trades a pending confirmation code for an access token.
// The code is consumed on success. Unknown users and wrong codes fail alike.
func (s *AuthService) ExchangeToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	logCtx := logrus.WithField("username", req.Username)

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logCtx.Warn("Token exchange failed: user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.ConfirmationCode == nil || !utils.CheckConfirmationCode(*user.ConfirmationCode, req.ConfirmationCode) {
		logCtx.Warn("Token exchange failed: confirmation code mismatch")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate token")
		return nil, ErrInternalServer
	}

	cleared, err := s.users.ClearConfirmationCode(ctx, user.ID, *user.ConfirmationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to clear confirmation code: %w", err)
	}
	if !cleared {
		logCtx.Warn("Token exchange failed: code consumed concurrently")
		return nil, ErrInvalidCredentials
	}

	logCtx.WithField("user_id", user.ID).Info("Access token issued")
	return &dto.TokenResponse{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenLifetime)

	claims := dto.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the current state of its user
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		logrus.WithError(err).Debug("Rejected access token")
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
