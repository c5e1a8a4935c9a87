package api

import (
	"time"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Peer auth tokens are HS256 JWTs signed with the key verifier
// (SHA-256 of the master key). Both peers derive the same key from the
// shared password, so both can sign and verify without the key itself or
// the password ever crossing the wire.

// TokenValidity bounds how long an issued peer token is accepted.
const TokenValidity = 24 * time.Hour

// GenerateToken signs a fresh token with the verifier of key.
func GenerateToken(key *cryptox.MasterKey) (string, error) {
	verifier := cryptox.MakeVerifier(key)
	defer cryptox.WipeBytes(verifier)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenValidity)),
	})
	return token.SignedString(verifier)
}

// ValidateToken checks the signature and expiry of tokenString against the
// given verifier. Returns common.ErrInvalidToken on any failure.
func ValidateToken(tokenString string, verifier []byte) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return verifier, nil
	})
	if err != nil || !token.Valid {
		return common.ErrInvalidToken
	}
	return nil
}
