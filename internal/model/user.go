package model

import "time"

const (
	UserTypeClient = "client"
	UserTypeDriver = "driver"
)

// AccessAuth is the only token scope issued by the service.
const AccessAuth = "auth"

// Token is an active session token held by a user.
type Token struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// User represents an account in the system
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never leaves the server
	Type         string    `json:"-"`
	Tokens       []Token   `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// PublicUser is the caller-facing view of a user.
type PublicUser struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Public returns the caller-facing projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// HasToken reports whether token is still listed as active for the given scope.
func (u *User) HasToken(access, token string) bool {
	for _, t := range u.Tokens {
		if t.Access == access && t.Token == token {
			return true
		}
	}
	return false
}

// SignupRequest is the body for POST /users
type SignupRequest struct {
	Email    string `json:"email" validate:"required,max=200,emailaddr"`
	Password string `json:"password" validate:"required,min=6,max=72"` // bcrypt rejects input past 72 bytes
	Type     string `json:"type" validate:"required,oneof=client driver"`
}

// LoginRequest is the body for POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
