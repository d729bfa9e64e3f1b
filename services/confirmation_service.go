package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/models"
	"github.com/yamdb-api/repositories"
	"github.com/yamdb-api/utils"
	"gorm.io/gorm"
)

const confirmationSubject = "Confirmation Code"

// ConfirmationService issues confirmation codes and emails them to users
type ConfirmationService struct {
	users      *repositories.UserRepository
	mailer     Mailer
	codeLength int
}

// NewConfirmationService creates a new confirmation service instance
func NewConfirmationService(users *repositories.UserRepository, mailer Mailer, codeLength int) *ConfirmationService {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &ConfirmationService{users: users, mailer: mailer, codeLength: codeLength}
}

// WithTx returns a service whose writes go through tx
func (s *ConfirmationService) WithTx(tx *gorm.DB) *ConfirmationService {
	return &ConfirmationService{users: s.users.WithTx(tx), mailer: s.mailer, codeLength: s.codeLength}
}

// Issue generates a fresh code, stores its hash on the user (replacing any
// pending one) and emails it. A failed send is returned to the caller.
func (s *ConfirmationService) Issue(ctx context.Context, user *models.User) (string, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username})

	code, err := utils.GenerateConfirmationCode(s.codeLength)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashConfirmationCode(code)
	if err != nil {
		return "", err
	}

	if err := s.users.SetConfirmationCode(ctx, user.ID, &hash); err != nil {
		return "", fmt.Errorf("failed to store confirmation code: %w", err)
	}
	user.ConfirmationCode = &hash

	body := fmt.Sprintf("Your confirmation code is: %s", code)
	if err := s.mailer.Send(ctx, user.Email, confirmationSubject, body); err != nil {
		logCtx.WithError(err).Error("Failed to dispatch confirmation code")
		return "", err
	}

	logCtx.Info("Confirmation code issued")
	return code, nil
}
