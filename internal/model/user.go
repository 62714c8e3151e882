package model

import "time"

// User represents a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResponse carries a human-readable outcome, for success and error alike.
type MessageResponse struct {
	Msg string `json:"msg"`
}
