package database

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	validPostgres := func() *Config {
		c := DefaultConfig()
		c.Host = "localhost"
		c.Username = "polaroid"
		c.Password = "secret"
		c.Database = "polaroid"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "should accept a complete postgres config", mutate: func(c *Config) {}},
		{name: "should require a host", mutate: func(c *Config) { c.Host = "" }, wantErr: "database host is required"},
		{name: "should reject an invalid port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port number"},
		{name: "should reject an unknown ssl mode", mutate: func(c *Config) { c.SSLMode = "sometimes" }, wantErr: "invalid SSL mode"},
		{name: "should reject an unknown driver", mutate: func(c *Config) { c.Driver = "oracle" }, wantErr: "unsupported database driver"},
		{name: "should reject a zero query timeout", mutate: func(c *Config) { c.QueryTimeout = 0 }, wantErr: "query timeout must be positive"},
		{name: "should reject an unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log level"},
		{
			name: "should accept sqlite without server settings",
			mutate: func(c *Config) {
				*c = *DefaultConfig()
				c.Driver = DriverSQLite
				c.Database = MemoryDSN
			},
		},
		{
			name: "should require a sqlite path",
			mutate: func(c *Config) {
				*c = *DefaultConfig()
				c.Driver = DriverSQLite
			},
			wantErr: "sqlite database path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validPostgres()
			tt.mutate(c)

			err := c.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	t.Run("should copy set values and keep defaults", func(t *testing.T) {
		c := FromAppConfig(config.DatabaseConfig{
			Driver:       DriverPostgres,
			Host:         "db",
			Port:         "6543",
			Username:     "u",
			Password:     "p",
			Database:     "d",
			MaxOpenConns: 7,
			QueryTimeout: 3 * time.Second,
		}, "error")

		assert.Equal(t, 6543, c.Port)
		assert.Equal(t, 7, c.MaxOpenConns)
		assert.Equal(t, 25, c.MaxIdleConns)
		assert.Equal(t, 3*time.Second, c.QueryTimeout)
		assert.Equal(t, "disable", c.SSLMode)
		assert.Equal(t, "error", c.LogLevel)
		assert.Equal(t, "host=db port=6543 user=u password=p dbname=d sslmode=disable", c.DSN())
	})

	t.Run("should use the path as sqlite dsn", func(t *testing.T) {
		c := FromAppConfig(config.DatabaseConfig{Driver: DriverSQLite, Database: MemoryDSN}, "")

		assert.Equal(t, MemoryDSN, c.DSN())
		assert.True(t, c.IsMemory())
		assert.Equal(t, "warn", c.LogLevel)
	})
}
