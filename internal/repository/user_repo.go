package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RaymondMik/GetRideApp/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrNoRecord is returned by mutations whose target row does not exist.
var ErrNoRecord = errors.New("record not found")

const userColumns = `id, email, password_hash, type, tokens, created_at`

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	AppendToken(ctx context.Context, userID string, token model.Token) error
	RemoveToken(ctx context.Context, userID, token string) error
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in the generated ID and CreatedAt
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.Tokens == nil {
		user.Tokens = []model.Token{}
	}
	tokens, err := json.Marshal(user.Tokens)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}

	sql := `INSERT INTO users (email, password_hash, type, tokens)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err = r.db.QueryRow(ctx, sql, user.Email, user.PasswordHash, user.Type, string(tokens)).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email; nil, nil when there is none
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by ID; nil, nil when there is none
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// AppendToken adds token to the end of the user's token list in one statement
func (r *userRepository) AppendToken(ctx context.Context, userID string, token model.Token) error {
	payload, err := json.Marshal([]model.Token{token})
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	sql := `UPDATE users SET tokens = tokens || $2::jsonb WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, userID, string(payload))
	if err != nil {
		return fmt.Errorf("failed to append token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to append token: %w", ErrNoRecord)
	}
	return nil
}

// RemoveToken drops every entry holding token, keeping the order of the rest
func (r *userRepository) RemoveToken(ctx context.Context, userID, token string) error {
	sql := `UPDATE users SET tokens = COALESCE(
                (SELECT jsonb_agg(t ORDER BY ord) FROM jsonb_array_elements(tokens) WITH ORDINALITY AS e(t, ord)
                 WHERE t->>'token' <> $2),
                '[]'::jsonb)
            WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, userID, token)
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to remove token: %w", ErrNoRecord)
	}
	return nil
}

// UpdatePasswordHash replaces the stored hash
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	sql := `UPDATE users SET password_hash = $2 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update password: %w", ErrNoRecord)
	}
	return nil
}

// Delete removes the user together with its tokens
func (r *userRepository) Delete(ctx context.Context, userID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete user: %w", ErrNoRecord)
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Type, &user.Tokens, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for finders, the service layer decides
		}
		return nil, err
	}
	if user.Tokens == nil {
		user.Tokens = []model.Token{}
	}
	return user, nil
}
