package database

import (
	"testing"
	"time"

	mcore "github.com/amirhossein-jamali/polaroid-studio/mocks/port/core"
	"github.com/stretchr/testify/mock"
)

func TestConnectionPoolMonitor_Report(t *testing.T) {
	tests := []struct {
		name     string
		previous ConnectionPoolMetrics
		current  ConnectionPoolMetrics
		warnings []string
	}{
		{
			name:    "should stay quiet for a healthy pool",
			current: ConnectionPoolMetrics{MaxOpenConnections: 10, InUse: 2, IdleConnections: 3},
		},
		{
			name:     "should warn when most connections are busy",
			current:  ConnectionPoolMetrics{MaxOpenConnections: 10, InUse: 9},
			warnings: []string{"Database connection pool nearly exhausted"},
		},
		{
			name:     "should warn when callers started waiting",
			previous: ConnectionPoolMetrics{MaxOpenConnections: 10, WaitCount: 4, WaitDuration: time.Second},
			current:  ConnectionPoolMetrics{MaxOpenConnections: 10, InUse: 3, WaitCount: 7, WaitDuration: 3 * time.Second},
			warnings: []string{"Database callers waited for a connection"},
		},
		{
			name:     "should not repeat old waits",
			previous: ConnectionPoolMetrics{MaxOpenConnections: 10, WaitCount: 7},
			current:  ConnectionPoolMetrics{MaxOpenConnections: 10, WaitCount: 7},
		},
		{
			name:    "should skip single connection pools",
			current: ConnectionPoolMetrics{MaxOpenConnections: 1, InUse: 1, WaitCount: 50},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := mcore.NewMockLogger(t)
			for _, message := range tc.warnings {
				logger.On("Warn", message, mock.Anything).Once()
			}

			NewConnectionPoolMonitor(nil, logger).report(tc.previous, tc.current)
		})
	}
}

func TestConnectionPoolMonitor_StopBeforeStart(t *testing.T) {
	monitor := NewConnectionPoolMonitor(nil, mcore.NewMockLogger(t))
	monitor.Stop()
	monitor.Stop()
}
