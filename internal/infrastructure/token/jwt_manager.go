package token

import (
	"errors"
	"time"

	domain "realty/backend/internal/domain/auth"
	usecase "realty/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and decodes HS256 tokens carrying identity claims.
type JWTManager struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTManager constructs a manager with the provided signing secret and
// token lifetime.
func NewJWTManager(secret string, expiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

type tokenClaims struct {
	Name   string `json:"name"`
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue creates a signed token bound to the user's name and id.
func (m *JWTManager) Issue(name, userID string) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Name:   name,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Decode parses and validates the token. An expired token yields
// ErrTokenExpired; any structural or signature failure yields ErrTokenInvalid.
func (m *JWTManager) Decode(tokenString string) (*usecase.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	decoded := &usecase.Claims{
		Name:   claims.Name,
		UserID: claims.UserID,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}
	return decoded, nil
}
