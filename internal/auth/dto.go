package auth

import "github.com/harikrishnagadicharla/unicart/pkg/types"

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains the payload for creating a customer account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// AuthResult carries the bearer token and sanitized user produced by a
// successful login or registration.
type AuthResult struct {
	Token string             `json:"token"`
	User  *types.UserPayload `json:"user"`
}
