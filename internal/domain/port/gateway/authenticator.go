package gateway

import (
	"context"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
)

// AuthMode selects how callers are identified
type AuthMode string

const (
	AuthModeHosted AuthMode = "hosted"
	AuthModeGuest  AuthMode = "guest"
)

// Credentials are the identity hints taken from a request
type Credentials struct {
	BearerToken string
	GuestID     string
}

// Authenticator resolves request credentials to a principal
type Authenticator interface {
	// Mode returns the authentication mode served
	Mode() AuthMode

	// Authenticate returns the principal of the credentials.
	// It returns ErrAuthRequired when no usable identity is present.
	Authenticate(ctx context.Context, credentials Credentials) (*entity.Principal, error)
}
