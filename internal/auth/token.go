package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid_token")

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) NewToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(i.ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Parse(tokenString string) (access.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return access.Principal{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return access.Principal{}, ErrInvalidToken
	}

	sub, ok1 := claims["sub"].(float64)
	role, ok2 := claims["role"].(string)
	if !ok1 || !ok2 || sub <= 0 || !access.Role(role).Valid() {
		return access.Principal{}, ErrInvalidToken
	}

	return access.Principal{ID: uint(sub), Role: access.Role(role)}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
