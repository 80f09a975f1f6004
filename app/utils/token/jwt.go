package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
	TypeEmail   Type = "email"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	TokenType Type   `json:"token_type"`
	jwt.RegisteredClaims
}

type Config struct {
	SigningKey    string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	EmailExpiry   time.Duration
}

type JWTUtil struct {
	config Config
}

func NewJWTUtil(config Config) *JWTUtil {
	if config.EmailExpiry == 0 {
		config.EmailExpiry = 24 * time.Hour
	}
	return &JWTUtil{config: config}
}

func (j *JWTUtil) GenerateAccessToken(userID, email, role string) (string, error) {
	return j.generate(userID, email, role, TypeAccess, j.config.AccessExpiry)
}

func (j *JWTUtil) GenerateRefreshToken(userID, email, role string) (string, error) {
	return j.generate(userID, email, role, TypeRefresh, j.config.RefreshExpiry)
}

// GenerateEmailToken signs a short-lived token carried in verification links.
func (j *JWTUtil) GenerateEmailToken(userID, email string) (string, error) {
	return j.generate(userID, email, "", TypeEmail, j.config.EmailExpiry)
}

func (j *JWTUtil) generate(userID, email, role string, tokenType Type, expiry time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken parses and verifies a token, enforcing the expected type so an
// access token can never be replayed as a refresh token and vice versa.
func (j *JWTUtil) ValidateToken(tokenString string, expected Type) (*Claims, error) {
	t, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
