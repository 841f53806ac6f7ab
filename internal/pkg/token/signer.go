package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("token secret must not be empty")
)

const keyInfo = "avr-lab-reservation/reservation-token/v1"

// Signer produces opaque reservation tokens. Identical payload and salt yield
// the same token, so callers must still check the store for uniqueness.
type Signer struct {
	key []byte
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, err
	}

	return &Signer{key: key}, nil
}

func (s *Signer) Sign(payload, salt string) (string, error) {
	digest := sha256.Sum256([]byte(payload))
	claims := jwt.RegisteredClaims{
		Subject: hex.EncodeToString(digest[:]),
		ID:      salt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *Signer) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" || claims.ID == "" {
		return ErrInvalidToken
	}
	return nil
}
