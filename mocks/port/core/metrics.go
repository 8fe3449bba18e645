package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMetricsRecorder is a mock implementation of core.MetricsRecorder
type MockMetricsRecorder struct {
	mock.Mock
}

// NewMockMetricsRecorder creates a MockMetricsRecorder that asserts its expectations on cleanup
func NewMockMetricsRecorder(t *testing.T) *MockMetricsRecorder {
	m := new(MockMetricsRecorder)
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewPermissiveMockMetricsRecorder creates a MockMetricsRecorder that accepts any call
func NewPermissiveMockMetricsRecorder(t *testing.T) *MockMetricsRecorder {
	m := NewMockMetricsRecorder(t)
	m.On("RecordHTTPRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordGeneration", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordCreditCharge", mock.Anything).Maybe()
	m.On("RecordRateLimitDenied", mock.Anything).Maybe()
	return m
}

func (m *MockMetricsRecorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status, duration)
}

func (m *MockMetricsRecorder) RecordGeneration(kind, outcome string, duration time.Duration) {
	m.Called(kind, outcome, duration)
}

func (m *MockMetricsRecorder) RecordCreditCharge(amount int64) {
	m.Called(amount)
}

func (m *MockMetricsRecorder) RecordRateLimitDenied(rule string) {
	m.Called(rule)
}
