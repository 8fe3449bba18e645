package core

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockIDCodec is a mock implementation of core.IDCodec
type MockIDCodec struct {
	mock.Mock
}

// NewMockIDCodec creates a MockIDCodec that asserts its expectations on cleanup
func NewMockIDCodec(t *testing.T) *MockIDCodec {
	m := new(MockIDCodec)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIDCodec) Encode(id uint64) string {
	args := m.Called(id)
	return args.String(0)
}

func (m *MockIDCodec) Decode(publicID string) (uint64, bool) {
	args := m.Called(publicID)
	return args.Get(0).(uint64), args.Bool(1)
}
