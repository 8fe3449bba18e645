package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

// GuestAuthenticator identifies callers by a locally minted guest id
type GuestAuthenticator struct{}

var _ gateway.Authenticator = GuestAuthenticator{}

// NewGuestAuthenticator creates a guest-mode authenticator
func NewGuestAuthenticator() GuestAuthenticator {
	return GuestAuthenticator{}
}

// Mode returns guest
func (GuestAuthenticator) Mode() gateway.AuthMode {
	return gateway.AuthModeGuest
}

// Authenticate accepts a well-formed guest id and mints a fresh one otherwise.
// Callers compare the returned id with the supplied one to learn about a new identity.
func (GuestAuthenticator) Authenticate(_ context.Context, credentials gateway.Credentials) (*entity.Principal, error) {
	guestID := strings.TrimSpace(credentials.GuestID)
	if !ValidGuestID(guestID) {
		guestID = NewGuestID()
	}
	return &entity.Principal{UserID: guestID, Guest: true}, nil
}

// NewGuestID mints a guest identity
func NewGuestID() string {
	return entity.GuestIDPrefix + uuid.NewString()
}

// ValidGuestID reports whether id is a guest prefix followed by a uuid
func ValidGuestID(id string) bool {
	if !entity.IsGuestID(id) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(id, entity.GuestIDPrefix))
	return err == nil
}
