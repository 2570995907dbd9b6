package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/askarovb/auth-service/internal/metrics"
	"github.com/askarovb/auth-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "session"

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error)
	ResendVerification(ctx context.Context, email string) (bool, error)
	Verify(ctx context.Context, rawToken string) error
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (bool, error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	sessionTTL  time.Duration
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		sessionTTL:  sessionTTL,
		logger:      logger.With("component", "auth_handler"),
	}
}

// userResponse is the redacted projection: never the password hash,
// never token material.
type userResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}

type registerRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/register
// email_sent=false means the record was created but the verification
// email did not go out — the caller should use /auth/resend-verification.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	if !result.EmailSent {
		metrics.EmailsSentTotal.WithLabelValues("verification", "failure").Inc()
	} else {
		metrics.EmailsSentTotal.WithLabelValues("verification", "success").Inc()
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         result.User.ID,
		"email_sent": result.EmailSent,
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/resend-verification
// Always returns 202 to avoid revealing whether the email is registered.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.authUsecase.ResendVerification(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.ErrorContext(c.Request.Context(), "resend verification", "error", err)
	}
	if sent {
		metrics.EmailsSentTotal.WithLabelValues("verification", "success").Inc()
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the address is registered, a verification email has been sent"})
}

// GET /auth/verify?token=<raw>
// Verification is one-shot: a second call with the same token finds no
// holder and gets 401, which is the expected terminal state.
func (h *AuthHandler) Verify(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.authUsecase.Verify(c.Request.Context(), rawToken); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound), errors.Is(err, domain.ErrTokenInvalid):
			metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
		default:
			h.logger.ErrorContext(c.Request.Context(), "verify email", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.VerificationsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// The 401 body is identical for unknown email and wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		case errors.Is(err, domain.ErrEmailNotVerified):
			metrics.LoginsTotal.WithLabelValues("unverified").Inc()
			c.JSON(http.StatusForbidden, gin.H{"error": errEmailNotVerified})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	// Session cookie lives exactly as long as the token it carries.
	c.SetCookie(sessionCookie, result.Token, int(h.sessionTTL.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  toUserResponse(result.User),
	})
}

// POST /auth/logout
// Stateless: clears the cookie; the token stays cryptographically valid
// until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// POST /auth/forgot-password
// Always returns 202: a missing account and a mail failure are both
// invisible to the caller (user-enumeration hardening).
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.ErrorContext(c.Request.Context(), "forgot password", "error", err)
	}
	if sent {
		metrics.EmailsSentTotal.WithLabelValues("reset", "success").Inc()
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the address is registered, a reset email has been sent"})
}

type resetPasswordRequest struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid):
			metrics.PasswordResetsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
		default:
			h.logger.ErrorContext(c.Request.Context(), "reset password", "error", err)
			metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
