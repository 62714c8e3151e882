package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"github.com/gymlog/gymlog-go/internal/model"
	"github.com/gymlog/gymlog-go/internal/repository"
)

const maxUsernameLength = 64

// UserStore is the credential store consumed by AuthService.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer signs access tokens for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is verified when the user does not exist so both login
	// failure paths cost one hash evaluation.
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) (*AuthService, error) {
	dummy, err := hasher.Hash("gymlog-dummy-password")
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Register validates req, hashes the password and stores the user.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	switch {
	case username == "":
		return invalid("username", "is required")
	case len(username) > maxUsernameLength:
		return invalid("username", "must be at most 64 characters")
	case strings.IndexFunc(username, unicode.IsSpace) >= 0:
		return invalid("username", "must not contain whitespace")
	case email == "":
		return invalid("email", "is required")
	case req.Password == "":
		return invalid("password", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email", "is not a valid address")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return storageErr("create user", err)
	}

	return nil
}

// Login verifies the credentials and issues an access token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return model.TokenResponse{}, invalid("username", "is required")
	}
	if req.Password == "" {
		return model.TokenResponse{}, invalid("password", "is required")
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = s.hasher.Verify(req.Password, s.dummyHash)
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, storageErr("get user", err)
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil || !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{AccessToken: token}, nil
}

// CurrentUser returns the public profile of username.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, storageErr("get user", err)
	}

	return model.UserResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
