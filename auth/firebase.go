package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Firebase ID tokens are standard OIDC tokens issued by securetoken with
// the project id as both issuer suffix and audience.
const issuerBase = "https://securetoken.google.com/"

type firebaseVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewFirebase builds a Verifier for the given Firebase project. Provider
// discovery happens once, up front; verification afterwards is local
// apart from key refreshes.
func NewFirebase(ctx context.Context, projectID string) (Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerBase+projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase oidc provider: %w", err)
	}

	return &firebaseVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: projectID}),
	}, nil
}

func (f *firebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	idToken, err := f.verifier.Verify(ctx, token)
	if err != nil {
		return "", ErrUnauthorized
	}

	var claims struct {
		Email string `json:"email"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return "", ErrUnauthorized
	}

	if claims.Email == "" {
		return "", ErrUnauthorized
	}

	return claims.Email, nil
}
