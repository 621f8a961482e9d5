package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
		wantErr  bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", expected: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "no bearer prefix", header: "abc.def.ghi", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := TokenFromHeader(test.header)
			if test.wantErr {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, token)
		})
	}
}

func TestDenyRejectsEverything(t *testing.T) {
	_, err := Deny().Verify(context.Background(), "any-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
