package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ===================== REQUESTS ===================== */

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=120"`
	IDNumber   string `json:"id_number" validate:"required,min=3,max=40"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	GradeLevel string `json:"grade_level" validate:"required,min=1,max=20"`
	Section    string `json:"section" validate:"required,min=1,max=20"`
	Contact    string `json:"contact" validate:"omitempty,max=40"`
	Address    string `json:"address" validate:"omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email or id number
	Password   string `json:"password" validate:"required"`
	UserType   string `json:"user_type" validate:"required,oneof=student staff"`
}

type GoogleLoginRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=student staff"`
}

/* ===================== RESPONSES ===================== */

type AuthUser struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IDNumber string    `json:"id_number"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}
