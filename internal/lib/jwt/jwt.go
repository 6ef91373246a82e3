package jwt

import (
	"errors"
	"fmt"
	"time"

	"dcolors/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenExpired       = errors.New("token expired")
)

// NewToken подписывает токен сессии администратора секретом secret
func NewToken(sessionID, email string, duration time.Duration, secret []byte) (string, error) {
	now := time.Now()

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sid"] = sessionID
	claims["email"] = email
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(duration).Unix()

	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenString string, secret []byte) (models.TokenMeta, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenMeta{}, ErrTokenExpired
		}
		return models.TokenMeta{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.TokenMeta{}, ErrInvalidToken
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return models.TokenMeta{}, ErrInvalidTokenClaims
	}
	email, _ := claims["email"].(string)

	meta := models.TokenMeta{SessionID: sid, Email: email}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		meta.IssuedAt = iat.Unix()
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		meta.ExpiresAt = exp.Unix()
	}

	return meta, nil
}
