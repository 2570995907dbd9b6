package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/askarovb/auth-service/internal/email"
	"github.com/askarovb/auth-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJWTTTL     = 24 * time.Hour
	defaultResetTTL   = 10 * time.Minute
	defaultBcryptCost = 12
)

// AuthConfig carries the knobs the auth core needs. Zero values fall
// back to the defaults above.
type AuthConfig struct {
	JWTKey               []byte
	JWTTTL               time.Duration
	BcryptCost           int
	ResetTokenTTL        time.Duration
	BaseURL              string
	RequireVerifiedLogin bool
}

type AuthUsecase struct {
	users           repository.UserRepository
	email           email.Sender
	jwtKey          []byte
	jwtTTL          time.Duration
	bcryptCost      int
	resetTTL        time.Duration
	baseURL         string
	requireVerified bool
	now             func() time.Time
}

type Option func(*AuthUsecase)

// WithClock overrides the time source. Used by tests to drive the
// reset-token expiry window.
func WithClock(now func() time.Time) Option {
	return func(u *AuthUsecase) { u.now = now }
}

func NewAuthUsecase(users repository.UserRepository, sender email.Sender, cfg AuthConfig, opts ...Option) *AuthUsecase {
	u := &AuthUsecase{
		users:           users,
		email:           sender,
		jwtKey:          cfg.JWTKey,
		jwtTTL:          cfg.JWTTTL,
		bcryptCost:      cfg.BcryptCost,
		resetTTL:        cfg.ResetTokenTTL,
		baseURL:         cfg.BaseURL,
		requireVerified: cfg.RequireVerifiedLogin,
		now:             time.Now,
	}
	if u.jwtTTL == 0 {
		u.jwtTTL = defaultJWTTTL
	}
	if u.bcryptCost == 0 {
		u.bcryptCost = defaultBcryptCost
	}
	if u.resetTTL == 0 {
		u.resetTTL = defaultResetTTL
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult reports the partial-success case: the user record
// exists even when the verification email did not go out.
type RegisterResult struct {
	User      *domain.User
	EmailSent bool
}

// Register creates an unverified user with a hashed password and a
// pending verification token, then emails the verify link. The email
// uniqueness check here is a fast path; the storage constraint inside
// Create is the real guard against a duplicate-insert race.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	name := strings.TrimSpace(input.Name)
	emailAddr := normalizeEmail(input.Email)
	if name == "" || emailAddr == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := u.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	rawToken, err := newRawToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	tokenHash := hashToken(rawToken)

	created, err := u.users.Create(ctx, &domain.User{
		Name:              name,
		Email:             emailAddr,
		PasswordHash:      string(hash),
		Role:              domain.RoleUser,
		IsVerified:        false,
		VerificationToken: &tokenHash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	sent := u.sendVerification(ctx, emailAddr, rawToken) == nil
	return &RegisterResult{User: created, EmailSent: sent}, nil
}

// ResendVerification regenerates the pending token for an unverified
// user and emails a fresh link. Already-verified users are a no-op.
func (u *AuthUsecase) ResendVerification(ctx context.Context, emailAddr string) (bool, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return false, domain.ErrInvalidInput
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return false, err
	}
	if user.IsVerified {
		return false, nil
	}

	rawToken, err := newRawToken()
	if err != nil {
		return false, fmt.Errorf("generate token: %w", err)
	}
	if err := u.users.SetVerificationToken(ctx, user.ID, hashToken(rawToken)); err != nil {
		return false, fmt.Errorf("store verification token: %w", err)
	}

	if err := u.sendVerification(ctx, emailAddr, rawToken); err != nil {
		return false, nil
	}
	return true, nil
}

// Verify flips is_verified and clears the token. A second call with the
// same token finds no holder and returns ErrTokenNotFound — that is the
// expected terminal state, not a retryable failure.
func (u *AuthUsecase) Verify(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrInvalidInput
	}

	user, err := u.users.FindByVerificationToken(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTokenNotFound
		}
		return fmt.Errorf("find by verification token: %w", err)
	}

	if err := u.users.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies credentials and issues a signed session token. The
// error for an unknown email and a wrong password is identical so the
// response cannot be used to probe which emails are registered.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Checked after the password: a caller without valid credentials
	// only ever sees the uniform error above, so the policy does not
	// reveal which addresses are registered.
	if u.requireVerified && !user.IsVerified {
		return nil, domain.ErrEmailNotVerified
	}

	now := u.now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign jwt: %w", err)
	}

	return &LoginResult{Token: signed, User: user}, nil
}

// CurrentUser resolves an authenticated caller's id to the user record.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword opens a reset window: a fresh token digest with an
// absolute expiry, superseding any prior pending reset. The returned
// bool reports whether the email actually went out.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) (bool, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return false, domain.ErrInvalidInput
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return false, err
	}

	rawToken, err := newRawToken()
	if err != nil {
		return false, fmt.Errorf("generate token: %w", err)
	}
	expiresAt := u.now().Add(u.resetTTL)
	if err := u.users.SetResetToken(ctx, user.ID, hashToken(rawToken), expiresAt); err != nil {
		return false, fmt.Errorf("store reset token: %w", err)
	}

	link := u.baseURL + "/auth/reset-password?token=" + rawToken
	subject, body := email.ResetEmail(link, int(u.resetTTL.Minutes()))
	if err := u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return false, nil
	}
	return true, nil
}

// ResetPassword replaces the hash and closes the reset window. Expiry
// is enforced by the store lookup against the injected clock, so an
// expired token behaves exactly like an unknown one.
func (u *AuthUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := u.users.FindByResetToken(ctx, hashToken(rawToken), u.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("find by reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (u *AuthUsecase) sendVerification(ctx context.Context, to, rawToken string) error {
	link := u.baseURL + "/auth/verify?token=" + rawToken
	subject, body := email.VerificationEmail(link)
	return u.email.Send(ctx, to, subject, body)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// newRawToken returns 32 bytes of crypto/rand entropy, hex-encoded.
func newRawToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// hashToken is the at-rest form of a token: the store never sees the
// raw value that travels in the email link.
func hashToken(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}
