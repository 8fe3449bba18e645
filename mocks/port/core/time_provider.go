package core

import (
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock implementation of core.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewMockTimeProvider creates a MockTimeProvider that asserts its expectations on cleanup
func NewMockTimeProvider(t *testing.T) *MockTimeProvider {
	m := new(MockTimeProvider)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewFixedTimeProvider creates a MockTimeProvider whose Now always returns now
func NewFixedTimeProvider(t *testing.T, now time.Time) *MockTimeProvider {
	m := NewMockTimeProvider(t)
	m.On("Now").Return(now).Maybe()
	return m
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) coreport.Duration {
	args := m.Called(t)
	return args.Get(0).(coreport.Duration)
}
