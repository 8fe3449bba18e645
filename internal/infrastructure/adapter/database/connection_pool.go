package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

// poolPressureRatio is the share of open connections in use above which the
// pool is reported as nearly exhausted
const poolPressureRatio = 0.8

// ConnectionPoolMetrics is one sample of the sql.DB pool statistics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
}

func poolMetricsFrom(stats sql.DBStats) ConnectionPoolMetrics {
	return ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

// ConnectionPoolMonitor samples the pool of a connected manager. Generation
// bursts hold connections while settling, so it warns when most connections
// are busy or when callers started queueing since the previous sample.
type ConnectionPoolMonitor struct {
	db     *Manager
	logger coreport.Logger

	mu     sync.RWMutex
	last   ConnectionPoolMetrics
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{db: db, logger: logger}
}

// Start takes a first sample and then samples every interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.sample(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.sample(); err != nil {
					m.logger.Error("Failed to sample connection pool", map[string]any{
						"error": err.Error(),
					})
				}
			}
		}
	}()

	return nil
}

// Stop ends sampling and waits for the loop to exit. It may be called more
// than once, and before Start.
func (m *ConnectionPoolMonitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

// GetMetrics returns the latest sample
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *ConnectionPoolMonitor) sample() error {
	gormDB := m.db.DB()
	if gormDB == nil {
		return fmt.Errorf("database is not connected")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	current := poolMetricsFrom(sqlDB.Stats())

	m.mu.Lock()
	previous := m.last
	m.last = current
	m.mu.Unlock()

	m.report(previous, current)
	return nil
}

// report logs pool pressure; single-connection pools (sqlite) always queue
// and are skipped
func (m *ConnectionPoolMonitor) report(previous, current ConnectionPoolMetrics) {
	if current.MaxOpenConnections <= 1 {
		return
	}

	if float64(current.InUse) > float64(current.MaxOpenConnections)*poolPressureRatio {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":   current.InUse,
			"idle":     current.IdleConnections,
			"max_open": current.MaxOpenConnections,
		})
	}

	if waited := current.WaitCount - previous.WaitCount; waited > 0 {
		m.logger.Warn("Database callers waited for a connection", map[string]any{
			"waited":    waited,
			"wait_time": (current.WaitDuration - previous.WaitDuration).String(),
			"max_open":  current.MaxOpenConnections,
		})
	}
}
