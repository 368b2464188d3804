package models

import (
	"strings"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */
// User represents the user entity
type User struct {
	gorm.Model
	Email    string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"` // Stored lowercase
	Name     string `gorm:"type:varchar(150);not null;index" json:"name"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
}

// BeforeSave keeps the stored email case-normalized whatever the caller passed.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

/** -------------------- DTOs -------------------- */
// Request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Name     string `json:"name" binding:"required,max=150"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest represents the request for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse represents the response for a successful login
// swagger:model
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func NewUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
