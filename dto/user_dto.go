package dto

import "github.com/yamdb-api/models"

// UserResponse is the public view of a user record
type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Bio       *string     `json:"bio"`
	Role      models.Role `json:"role"`
}

// UserSearchQuery filters the user directory
type UserSearchQuery struct {
	PageQuery
	Search string `form:"search"`
}

// CreateUserRequest is an administrator creating a user
type CreateUserRequest struct {
	Username  string      `json:"username" binding:"required,max=150"`
	Email     string      `json:"email" binding:"required,email,max=254"`
	FirstName string      `json:"firstName" binding:"max=150"`
	LastName  string      `json:"lastName" binding:"max=150"`
	Bio       *string     `json:"bio"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest is an administrator patching a user. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,max=150"`
	Email     *string      `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string      `json:"firstName" binding:"omitempty,max=150"`
	LastName  *string      `json:"lastName" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateProfileRequest is a user patching their own record.
// It has no role field, so a submitted role is ignored.
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"firstName" binding:"omitempty,max=150"`
	LastName  *string `json:"lastName" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
}

// AsUserUpdate converts a profile patch into the generic user patch, role excluded
func (r UpdateProfileRequest) AsUserUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
}

// NewUserResponse maps a user model onto its response
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
