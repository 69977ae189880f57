package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims carried by access and refresh tokens.
// TokenType distinguishes the two; RegisteredClaims.ID (jti) is what
// the logout blacklist keys on.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// RegisterRequest is the body for POST /register/.
type RegisterRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmedPassword string `json:"confirmed_password"`
}

// LoginRequest is the body for POST /login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse is the body returned by login; the tokens themselves
// travel in HTTP-only cookies.
type LoginResponse struct {
	Detail string       `json:"detail"`
	User   UserResponse `json:"user"`
}

// DetailResponse carries a human-readable status message.
type DetailResponse struct {
	Detail string `json:"detail"`
}
