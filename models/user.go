package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"size:150;uniqueIndex;not null;check:chk_users_username_not_me,username <> 'me'"`
	Email            string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName        string    `json:"firstName" gorm:"size:150"`
	LastName         string    `json:"lastName" gorm:"size:150"`
	Bio              *string   `json:"bio" gorm:"type:text"`
	Role             Role      `json:"role" gorm:"type:varchar(20);default:'user';not null"`
	IsSuperuser      bool      `json:"-" gorm:"not null;default:false"`
	ConfirmationCode *string   `json:"-" gorm:"size:100"` // bcrypt hash; nil means no pending challenge
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// IsAdmin is true for admins and superusers alike
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// IsModerator reports the moderator role
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
