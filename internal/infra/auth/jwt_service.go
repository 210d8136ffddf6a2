// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"nuovo/config"
	"nuovo/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Account roles carried in the token.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{secret: cfg.SecretKey.Access}, nil
}

// Generate creates a signed HS256 token carrying the account email and role.
func (s *jwtService) Generate(email string, isAdmin bool) (string, error) {
	role := RoleUser
	if isAdmin {
		role = RoleAdmin
	}

	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return signed, nil
}

// Validate checks the token signature and extracts the identity claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse access token")
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	email, ok := mapClaims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("email claim missing from token")
	}
	role, _ := mapClaims["role"].(string)

	return &service.Claims{Email: email, Role: role}, nil
}
