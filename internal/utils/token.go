package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "organiz-api"

var ErrInvalidToken = errors.New("invalid token")

type (
	// JWTClaims is the signed payload of a bearer token.
	JWTClaims struct {
		ID        uint64 `json:"id"`
		Email     string `json:"email"`
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Role      string `json:"role"`
		jwt.RegisteredClaims
	}
	// JWTMessage is what callers put into, and get back from, a token.
	JWTMessage struct {
		UserID    uint64
		Email     string
		Firstname string
		Lastname  string
		Role      string
	}
)

type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenManager(secretKey string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// CreateToken signs a new HS256 token for msg.
func (tm *TokenManager) CreateToken(msg JWTMessage) (string, error) {
	issuedAt := tm.now()
	claims := &JWTClaims{
		ID:        msg.UserID,
		Email:     msg.Email,
		Firstname: msg.Firstname,
		Lastname:  msg.Lastname,
		Role:      msg.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(msg.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// CheckToken verifies signature, issuer and expiry and returns the claims.
func (tm *TokenManager) CheckToken(requestToken string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, claims, func(_ *jwt.Token) (any, error) {
		return tm.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Message returns the caller-facing view of the claims.
func (c *JWTClaims) Message() JWTMessage {
	return JWTMessage{
		UserID:    c.ID,
		Email:     c.Email,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Role:      c.Role,
	}
}
