package server

import (
	"strings"

	"github.com/dmitrijs2005/clipvault/internal/api"
	"github.com/m1z23r/drift/pkg/drift"
)

// TokenAuth rejects requests whose bearer token was not signed with the
// peer's key verifier. Only a caller who derived the same master key from
// the shared password can produce a valid token.
func TokenAuth(verifier []byte) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		if err := api.ValidateToken(parts[1], verifier); err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Next()
	}
}
