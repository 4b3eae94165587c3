package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xw1nchester/dealscan-backend/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

type manager struct {
	jwtConfig config.JWT
}

func NewManager(jwtConfig config.JWT) *manager {
	return &manager{
		jwtConfig: jwtConfig,
	}
}

// UserClaims is what the auth collaborator puts in an access token.
type UserClaims struct {
	UserID int    `json:"user_id"`
	Tier   string `json:"tier"`
}

type customClaims struct {
	jwt.RegisteredClaims
	UserClaims
}

func (m *manager) GenerateToken(user UserClaims) (string, error) {
	customClaims := customClaims{
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.jwtConfig.AccessTokenTTL)),
		},
		user,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, customClaims)

	return token.SignedString([]byte(m.jwtConfig.Secret))
}

func (m *manager) ParseToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&customClaims{},
		func(token *jwt.Token) (any, error) {
			return []byte(m.jwtConfig.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*customClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &claims.UserClaims, nil
}
