// Package auth resolves bearer credentials to verified identities. The
// identity is the user's email; it is the sole unit of authorization in
// the rest of the system.
package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized access")

// Verifier turns a raw bearer token into a verified email address.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Deny is a Verifier that rejects every credential. It stands in when no
// identity provider is configured, keeping gated endpoints closed rather
// than open.
func Deny() Verifier {
	return denyAll{}
}

type denyAll struct{}

func (denyAll) Verify(context.Context, string) (string, error) {
	return "", ErrUnauthorized
}

// TokenFromHeader extracts the token from an Authorization header.
// A missing header or a value without a Bearer prefix is unauthorized.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrUnauthorized
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", ErrUnauthorized
	}

	return token, nil
}
