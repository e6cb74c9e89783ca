package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/utils"
)

// AuthService provides session related services: signup, login, logout and
// resolving a presented token to a live user.
type AuthService interface {
	Signup(ctx context.Context, email, password, userType string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, caller *model.User, token string) error
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Me(caller *model.User) model.PublicUser
}

type authService struct {
	credentials CredentialService
	jwtUtil     *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(credentials CredentialService, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		credentials: credentials,
		jwtUtil:     jwtUtil,
	}
}

// Signup creates a new user account and opens its first session
func (s *authService) Signup(ctx context.Context, email, password, userType string) (*model.User, string, error) {
	user, err := s.credentials.CreateUser(ctx, email, password, userType)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("user %s created, but %w", user.ID, err)
	}
	return user, token, nil
}

// Login checks credentials and opens a new session. Earlier sessions stay valid.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.credentials.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes token. Revoking a token twice is not an error.
func (s *authService) Logout(ctx context.Context, caller *model.User, token string) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if err := s.credentials.RemoveToken(ctx, caller.ID, token); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Authenticate resolves token to its user. The signature, the user and the
// user's active token list are checked on every call; a well signed token
// that was logged out is rejected.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.credentials.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if !user.HasToken(model.AccessAuth, token) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// Me returns the caller-facing view of the resolved caller
func (s *authService) Me(caller *model.User) model.PublicUser {
	return caller.Public()
}

func (s *authService) issue(ctx context.Context, user *model.User) (string, error) {
	token, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.credentials.AppendToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}
