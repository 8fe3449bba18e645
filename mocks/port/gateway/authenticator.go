package gateway

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/entity"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/stretchr/testify/mock"
)

// MockAuthenticator is a mock implementation of gateway.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

// NewMockAuthenticator creates a MockAuthenticator that asserts its expectations on cleanup
func NewMockAuthenticator(t *testing.T) *MockAuthenticator {
	m := new(MockAuthenticator)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthenticator) Mode() gateway.AuthMode {
	args := m.Called()
	return args.Get(0).(gateway.AuthMode)
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, credentials gateway.Credentials) (*entity.Principal, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Principal), args.Error(1)
}
