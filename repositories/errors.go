package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means a unique constraint was violated
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// translate maps GORM errors onto the repository sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEntry
	}
	return err
}
