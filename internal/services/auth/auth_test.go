package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"dcolors/internal/config"
	"dcolors/internal/lib/logger/handlers/slogdiscard"
	"dcolors/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, sessionID, email string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, email, ttl)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

const (
	adminEmail    = "admin@dcolors.test"
	adminPassword = "s3cret-pass"
)

var testCtx = context.Background()

func newTestAuth(t *testing.T) (*Auth, *MockSessionRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	a := New(slogdiscard.NewDiscardLogger(), repo, config.AuthConfig{
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		Secret:            "jwt-secret",
		SessionTTL:        time.Hour,
	})

	return a, repo
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		mockSetup func(repo *MockSessionRepository)
		wantErr   error
	}{
		{
			name:     "success",
			email:    " ADMIN@dcolors.test",
			password: adminPassword,
			mockSetup: func(repo *MockSessionRepository) {
				repo.On("SaveSession", testCtx, mock.AnythingOfType("string"), adminEmail, time.Hour).Return(nil)
			},
		},
		{
			name:      "wrong password",
			email:     adminEmail,
			password:  "nope",
			mockSetup: func(repo *MockSessionRepository) {},
			wantErr:   ErrInvalidCredentials,
		},
		{
			name:      "unknown email",
			email:     "someone@else.test",
			password:  adminPassword,
			mockSetup: func(repo *MockSessionRepository) {},
			wantErr:   ErrInvalidCredentials,
		},
		{
			name:     "session store down",
			email:    adminEmail,
			password: adminPassword,
			mockSetup: func(repo *MockSessionRepository) {
				repo.On("SaveSession", testCtx, mock.AnythingOfType("string"), adminEmail, time.Hour).Return(errors.New("redis down"))
			},
			wantErr: errors.New("redis down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, repo := newTestAuth(t)
			tt.mockSetup(repo)

			token, state, err := a.Login(testCtx, tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidCredentials) {
					assert.ErrorIs(t, err, ErrInvalidCredentials)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Empty(t, token)
				assert.False(t, state.IsAuthenticated())
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.True(t, state.IsAuthenticated())
				assert.Equal(t, adminEmail, state.Email)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		a, repo := newTestAuth(t)
		repo.On("SaveSession", testCtx, mock.Anything, adminEmail, time.Hour).Return(nil)

		token, state, err := a.Login(testCtx, adminEmail, adminPassword)
		require.NoError(t, err)

		repo.On("GetSession", testCtx, state.SessionID).Return(adminEmail, nil)

		got, err := a.Authenticate(testCtx, token)
		require.NoError(t, err)
		assert.Equal(t, state.SessionID, got.SessionID)
		assert.True(t, got.IsAuthenticated())
		repo.AssertExpectations(t)
	})

	t.Run("empty token is anonymous", func(t *testing.T) {
		a, _ := newTestAuth(t)

		got, err := a.Authenticate(testCtx, "")
		require.NoError(t, err)
		assert.False(t, got.IsAuthenticated())
	})

	t.Run("revoked session", func(t *testing.T) {
		a, repo := newTestAuth(t)
		repo.On("SaveSession", testCtx, mock.Anything, adminEmail, time.Hour).Return(nil)

		token, state, err := a.Login(testCtx, adminEmail, adminPassword)
		require.NoError(t, err)

		repo.On("GetSession", testCtx, state.SessionID).Return("", storage.ErrSessionNotFound)

		_, err = a.Authenticate(testCtx, token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("tampered token", func(t *testing.T) {
		a, _ := newTestAuth(t)

		_, err := a.Authenticate(testCtx, "invalid.token.string")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	a, repo := newTestAuth(t)
	repo.On("DeleteSession", testCtx, "sid-1").Return(nil)

	assert.NoError(t, a.Logout(testCtx, "sid-1"))
	assert.NoError(t, a.Logout(testCtx, ""))
	repo.AssertExpectations(t)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword(adminPassword)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(adminPassword)))
}
