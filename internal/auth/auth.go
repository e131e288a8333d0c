package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	internal "github.com/hrkit/hr-management/internal"
	"github.com/hrkit/hr-management/internal/user"
)

// Claims are the session token payload: enough to resolve the caller
// without a server-side session table.
type Claims struct {
	UserID string `json:"id_user"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies signed session tokens.
type TokenGenerator interface {
	Generate(userID, email, role string) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a process-wide secret handed in
// at construction.
type JWTTokenGenerator struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (j *JWTTokenGenerator) Generate(userID, email, role string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// UserRepository is the credential store surface the auth service needs.
// Lookups see every lifecycle status; the service decides what to reject.
type UserRepository interface {
	FindByEmail(email string) (*user.User, error)
	GetByID(id string) (*user.User, error)
	Create(u *user.User) error
	UpdatePassword(id, passwordHash string) error
}

// LoginResult pairs the redacted user with the issued token.
type LoginResult struct {
	User  user.PublicUser `json:"user"`
	Token string          `json:"token"`
}
