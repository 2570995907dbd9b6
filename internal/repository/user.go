package repository

import (
	"context"
	"time"

	"github.com/askarovb/auth-service/internal/domain"
)

// UserRepository is the single arbiter of user-record consistency.
// Email uniqueness is enforced here (storage constraint), not by the
// usecase's existence check, which can race.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByVerificationToken matches on the token digest. Returns
	// domain.ErrUserNotFound if no unverified user holds it.
	FindByVerificationToken(ctx context.Context, tokenHash string) (*domain.User, error)

	// FindByResetToken matches on the digest and only returns a user
	// whose reset window is still open at now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)

	SetVerificationToken(ctx context.Context, userID, tokenHash string) error
	MarkVerified(ctx context.Context, userID string) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// UpdatePassword replaces the hash and clears any pending reset.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// ClearExpiredResetTokens nulls reset fields for rows whose window
	// closed before cutoff. Hygiene only; lookups enforce expiry anyway.
	ClearExpiredResetTokens(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
