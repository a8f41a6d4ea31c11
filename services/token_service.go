package services

import (
	"errors"
	"time"

	"recipe-service/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the payload of an issued bearer token
type TokenClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens. It keeps no state
// beyond its settings; a token is valid when its signature and claims check out.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from the auth configuration
func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, config.ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
		now:      time.Now,
	}, nil
}

// Issue signs a token for userID, valid for the configured TTL
func (s *TokenService) Issue(userID int) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate checks signature, issuer, audience and expiry in a single parse
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, &Error{Kind: KindUnauthorized, Message: "Invalid token", Err: err}
	}
	if !token.Valid {
		return nil, &Error{Kind: KindUnauthorized, Message: "Invalid token"}
	}
	return claims, nil
}
