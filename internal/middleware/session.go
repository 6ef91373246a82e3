package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"dcolors/internal/domain/models"
	"dcolors/internal/lib/logger/sl"
	"dcolors/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	SessionName     = "dcolors_session"
	SessionTokenKey = "token"
	authStateKey    = "auth_state"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.AuthState, error)
}

// Session резолвит состояние администратора один раз на запрос.
// Невалидная или отозванная сессия означает анонимный запрос.
func Session(log *slog.Logger, auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := models.AuthState{}

			if sess, err := session.Get(SessionName, c); err == nil {
				if token, ok := sess.Values[SessionTokenKey].(string); ok && token != "" {
					resolved, err := auth.Authenticate(c.Request().Context(), token)
					if err != nil {
						log.Debug("session rejected", sl.Err(err))
					} else {
						state = resolved
					}
				}
			}

			c.Set(authStateKey, state)

			return next(c)
		}
	}
}

// AuthState returns the state resolved by Session.
func AuthState(c echo.Context) models.AuthState {
	state, _ := c.Get(authStateKey).(models.AuthState)
	return state
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !AuthState(c).IsAuthenticated() {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationRequired)
		}
		return next(c)
	}
}
