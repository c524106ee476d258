// Package auth handles user registration, password checks, and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/spendly/internal/models"
)

// Authenticator verifies user credentials.
// Password login is the only implementation; the interface keeps the service
// layer independent of it.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
