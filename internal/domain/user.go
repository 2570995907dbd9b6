package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("missing or invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenNotFound      = errors.New("verification token not found")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrEmailNotVerified   = errors.New("email address is not verified")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity and credential record. PasswordHash is a bcrypt
// hash; the plaintext never leaves the usecase layer. VerificationToken
// and ResetToken hold SHA-256 digests of the raw tokens sent by email —
// the raw values are never persisted.
type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Role                Role
	IsVerified          bool
	VerificationToken   *string
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
