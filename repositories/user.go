package repositories

import (
	"context"

	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByEmailAndUsername retrieves the user registered with exactly this pair
func (r *UserRepository) FindByEmailAndUsername(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND username = ?", email, username).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ExistsByUsername checks if the username is taken by a user other than excludeID
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if the email is taken by a user other than excludeID
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// Update saves every field of an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error)
}

// SetConfirmationCode overwrites the pending code hash; nil clears it
func (r *UserRepository) SetConfirmationCode(ctx context.Context, id uint, codeHash *string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("confirmation_code", codeHash)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearConfirmationCode nulls the pending code only if it still equals codeHash.
// It reports false when another exchange consumed the code first.
func (r *UserRepository) ClearConfirmationCode(ctx context.Context, id uint, codeHash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND confirmation_code = ?", id, codeHash).
		Update("confirmation_code", nil)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// List retrieves users ordered by email, optionally filtered by a username search term
func (r *UserRepository) List(ctx context.Context, search string, page Page) ([]models.User, int64, error) {
	var users []models.User
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		db = db.Where("username LIKE ?", "%"+search+"%")
	}
	db = db.Session(&gorm.Session{})

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(db.Order("email asc"), page).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, totalCount, nil
}

// Delete removes a user together with their reviews and comments
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviewIDs := tx.Model(&models.Review{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("review_id IN (?) OR author_id = ?", reviewIDs, id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
