package model

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PhoneNumber  string
	FirstName    string
	LastName     string
	PasswordHash []byte
	PasswordSalt []byte
	Avatar       int
	IsAdmin      bool
	IsStaff      bool
	CreatedOn    time.Time
	UpdatedOn    *time.Time
	IsDeleted    bool
}

// AuthUser is the identity the bearer gate attaches to an admitted request.
type AuthUser struct {
	ID       int64
	Username string
	IsAdmin  bool
	IsStaff  bool
}

type UserCreateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type UserUpdateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type UserAdminStatusRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

type UserAvatarRequest struct {
	Avatar int `json:"avatar"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    int    `json:"avatar"`
	IsAdmin   bool   `json:"isAdmin"`
	IsStaff   bool   `json:"isStaff"`
}

func NewUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		IsAdmin:   user.IsAdmin,
		IsStaff:   user.IsStaff,
	}
}
