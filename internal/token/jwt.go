package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/model"
)

// Claims represents JWT claims carrying the bearer's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWT creates a new JWT token manager with the provided secret key and
// token lifetime.
func NewJWT(secretKey string, tokenTTL time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, tokenTTL: tokenTTL}
}

// Generate creates a signed bearer token embedding identity and an expiry.
func (j *JWT) Generate(identity model.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
		UserID: identity.UserID,
		Name:   identity.Name,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse checks the signature and expiry and extracts the identity. No claim
// field is trusted before the signature verifies. Expired tokens return
// model.ErrTokenExpired; any other failure returns model.ErrTokenInvalid.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, model.ErrTokenExpired
		}
		return model.Identity{}, model.ErrTokenInvalid
	}
	if !token.Valid {
		return model.Identity{}, model.ErrTokenInvalid
	}
	if claims.UserID == uuid.Nil {
		return model.Identity{}, model.ErrTokenInvalid
	}

	return model.Identity{UserID: claims.UserID, Name: claims.Name}, nil
}
