package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dcolors/internal/config"
	"dcolors/internal/domain/models"
	"dcolors/internal/lib/jwt"
	"dcolors/internal/lib/logger/sl"
	"dcolors/internal/repository"
	"dcolors/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Auth единственный администратор каталога, сессии живут в Redis
type Auth struct {
	log          *slog.Logger
	sessions     repository.SessionRepository
	email        string
	passwordHash []byte
	secret       []byte
	sessionTTL   time.Duration
}

func New(log *slog.Logger, sessions repository.SessionRepository, cfg config.AuthConfig) *Auth {
	return &Auth{
		log:          log,
		sessions:     sessions,
		email:        strings.TrimSpace(cfg.AdminEmail),
		passwordHash: []byte(cfg.AdminPasswordHash),
		secret:       []byte(cfg.Secret),
		sessionTTL:   cfg.SessionTTL,
	}
}

// Login checks the admin credentials and opens a new session.
func (a *Auth) Login(ctx context.Context, email, password string) (string, models.AuthState, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login admin")

	if !strings.EqualFold(strings.TrimSpace(email), a.email) {
		log.Warn("unknown email")

		return "", models.AuthState{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.AuthState{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	sessionID := uuid.NewString()

	token, err := jwt.NewToken(sessionID, a.email, a.sessionTTL, a.secret)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.AuthState{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.sessions.SaveSession(ctx, sessionID, a.email, a.sessionTTL); err != nil {
		log.Error("failed to save session", sl.Err(err))

		return "", models.AuthState{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in")

	return token, models.AuthState{
		SessionID: sessionID,
		Email:     a.email,
		ExpiresAt: time.Now().Add(a.sessionTTL),
	}, nil
}

// Authenticate resolves a session token. An empty token yields the
// anonymous state without error.
func (a *Auth) Authenticate(ctx context.Context, token string) (models.AuthState, error) {
	const op = "auth.Authenticate"

	if token == "" {
		return models.AuthState{}, nil
	}

	meta, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		return models.AuthState{}, fmt.Errorf("%s: %w: %v", op, ErrUnauthorized, err)
	}

	email, err := a.sessions.GetSession(ctx, meta.SessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return models.AuthState{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		a.log.Error("failed to load session", slog.String("op", op), sl.Err(err))

		return models.AuthState{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.AuthState{
		SessionID: meta.SessionID,
		Email:     email,
		ExpiresAt: time.Unix(meta.ExpiresAt, 0),
	}, nil
}

// Logout is idempotent.
func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	const op = "auth.Logout"

	if sessionID == "" {
		return nil
	}

	if err := a.sessions.DeleteSession(ctx, sessionID); err != nil {
		a.log.Error("failed to delete session", slog.String("op", op), sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// HashPassword returns the bcrypt hash stored in auth.admin_password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
