// Package auth implements the credential and token service: password
// hashing lives in pkg/crypto, signed-token issuance and rotation live here.
package auth

import (
	"context"
	"fmt"
	"time"

	"portfolio_server/core/domain"
	"portfolio_server/core/port/out"
	"portfolio_server/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of a short-lived access token. Claim names
// follow the wire contract consumed by the frontend.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a long-lived refresh token. It carries only
// the user id.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// TokenPair is one access/refresh issuance.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Config carries the signing material and expiries for the two token kinds.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues and verifies signed tokens and rotates refresh tokens.
type TokenService struct {
	cfg   Config
	users out.UserRepository
	now   func() time.Time
}

// NewTokenService creates a token service backed by the user repository for
// refresh-token persistence.
func NewTokenService(cfg Config, users out.UserRepository) *TokenService {
	return &TokenService{
		cfg:   cfg,
		users: users,
		now:   time.Now,
	}
}

// IssueAccessToken mints a short-lived token embedding the user's identity
// claims.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := AccessClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken mints a long-lived token carrying only the user id.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	now := s.now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken checks signature and expiry of an access token. Failures
// come back as apperr.InvalidToken, distinguishable from "user not found".
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.verify(tokenString, claims, s.cfg.AccessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, apperr.InvalidToken("token carries no user id")
	}
	return claims, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.verify(tokenString, claims, s.cfg.RefreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, apperr.InvalidToken("token carries no user id")
	}
	return claims, nil
}

func (s *TokenService) verify(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return apperr.InvalidToken("invalid token").WithError(err)
	}
	if !token.Valid {
		return apperr.InvalidToken("invalid token")
	}
	return nil
}

// Rotate issues a fresh token pair and persists the new refresh value on the
// user record, superseding any prior refresh token. Concurrent rotations for
// one user race; the last writer's token is the sole valid one.
func (s *TokenService) Rotate(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("failed to generate access token").WithError(err)
	}
	refreshToken, err := s.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal("failed to generate refresh token").WithError(err)
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, apperr.DatabaseError("persist refresh token", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
