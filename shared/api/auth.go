package api

import "github.com/cathome-dev/cathome/shared/domain"

// PasswordMinLen is the sign-up password floor. Validate tags cannot
// reference constants, so the min tag on SignUpRequest must state the same
// number.
const PasswordMinLen = 8

// Request DTOs

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type SignUpResponse struct {
	Message string `json:"message"`
}

type SignInResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for non-cookie clients
}

type SignOutResponse struct {
	Message string `json:"message"`
}

// MeResponse carries the current identity, or null when unauthenticated.
type MeResponse struct {
	User *UserResponse `json:"user"`
}

type UserResponse struct {
	Id       domain.UserId `json:"id"`
	Email    string        `json:"email"`
	Nickname string        `json:"nickname,omitempty"`
}
