package models

import "time"

// AuthState результат проверки сессии администратора для одного запроса
type AuthState struct {
	SessionID string    `json:"-"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func (a AuthState) IsAuthenticated() bool {
	return a.SessionID != ""
}

type TokenMeta struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}
