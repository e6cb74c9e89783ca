package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/repository"
	"github.com/RaymondMik/GetRideApp/internal/utils"
	"github.com/RaymondMik/GetRideApp/internal/validation"

	"github.com/google/uuid"
)

// CredentialService owns user records: creation, lookup, credential checks
// and the active token list. Passwords are hashed here before every write.
type CredentialService interface {
	CreateUser(ctx context.Context, email, password, userType string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
	AppendToken(ctx context.Context, userID, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
	UpdatePassword(ctx context.Context, userID, password string) error
	DeleteUser(ctx context.Context, userID string) error
}

type credentialService struct {
	users     repository.UserRepository
	hasher    *utils.PasswordHasher
	validator *validation.Validator
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(users repository.UserRepository, hasher *utils.PasswordHasher, validator *validation.Validator) CredentialService {
	return &credentialService{
		users:     users,
		hasher:    hasher,
		validator: validator,
	}
}

type passwordChange struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (s *credentialService) CreateUser(ctx context.Context, email, password, userType string) (*model.User, error) {
	req := model.SignupRequest{
		Email:    validation.NormalizeEmail(email),
		Password: password,
		Type:     userType,
	}
	if err := s.check(req, "User validation failed"); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Type:         req.Type,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

func (s *credentialService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// FindByID returns ErrNotFound for ids that are not UUIDs; no user can hold one.
func (s *credentialService) FindByID(ctx context.Context, id string) (*model.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return nil, ErrNotFound
	}
	user, err := s.users.FindByID(ctx, parsed.String())
	if err != nil {
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *credentialService) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		s.hasher.VerifyDummy(password)
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password for user %s: %w", user.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *credentialService) AppendToken(ctx context.Context, userID, token string) error {
	err := s.users.AppendToken(ctx, userID, model.Token{Access: model.AccessAuth, Token: token})
	return mapNoRecord(err)
}

// RemoveToken is a no-op when the token is already gone.
func (s *credentialService) RemoveToken(ctx context.Context, userID, token string) error {
	return mapNoRecord(s.users.RemoveToken(ctx, userID, token))
}

func (s *credentialService) UpdatePassword(ctx context.Context, userID, password string) error {
	if err := s.check(passwordChange{Password: password}, "Password validation failed"); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return mapNoRecord(s.users.UpdatePasswordHash(ctx, userID, hash))
}

// DeleteUser removes the user, its tokens and its ride requests.
func (s *credentialService) DeleteUser(ctx context.Context, userID string) error {
	return mapNoRecord(s.users.Delete(ctx, userID))
}

func (s *credentialService) check(req any, message string) error {
	fields, err := s.validator.Struct(req)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return newValidationError(message, fields)
	}
	return nil
}

func mapNoRecord(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNoRecord) {
		return ErrNotFound
	}
	return err
}
