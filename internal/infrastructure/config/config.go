package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Generator   GeneratorConfig `mapstructure:"generator"`
	Redis       RedisConfig     `mapstructure:"redis"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`
	Hashid      HashidConfig    `mapstructure:"hashid"`
	Features    FeaturesConfig  `mapstructure:"features"`
	Scheduler   SchedulerConfig `mapstructure:"scheduler"`
	Metrics     MetricsConfig   `mapstructure:"metrics"`
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | sqlite
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"` // file path or :memory: for sqlite
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	SeedData        bool          `mapstructure:"seedData"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"` // stdout, stderr or a file path
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	MaxBackups int    `mapstructure:"maxBackups"`
	Compress   bool   `mapstructure:"compress"`
}

// AuthConfig selects how callers are identified
type AuthConfig struct {
	Mode                string `mapstructure:"mode"` // hosted | guest
	JWTSecret           string `mapstructure:"jwtSecret"`
	Issuer              string `mapstructure:"issuer"`
	GuestInitialCredits int64  `mapstructure:"guestInitialCredits"`
}

// GeneratorConfig configures the image vendor
type GeneratorConfig struct {
	Provider        string        `mapstructure:"provider"` // nano_banana | placeholder
	BaseURL         string        `mapstructure:"baseURL"`
	APIKey          string        `mapstructure:"apiKey"`
	Model           string        `mapstructure:"model"`
	PollInterval    time.Duration `mapstructure:"pollIntervalMs"` // milliseconds
	MaxPollAttempts int           `mapstructure:"maxPollAttempts"`
	RequestTimeout  time.Duration `mapstructure:"requestTimeout"` // seconds
}

// RedisConfig contains the redis connection settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig selects the rate limiter backend
type RateLimitConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"` // redis | memory
}

// HashidConfig contains the public id salt
type HashidConfig struct {
	Salt string `mapstructure:"salt"`
}

// FeaturesConfig switches optional product areas
type FeaturesConfig struct {
	MVPMode      bool `mapstructure:"mvpMode"`
	Payment      bool `mapstructure:"payment"`
	GiftCode     bool `mapstructure:"giftCode"`
	OrderHistory bool `mapstructure:"orderHistory"`
}

// SchedulerConfig configures the background reconciler
type SchedulerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ReconcileSpec string        `mapstructure:"reconcileSpec"`
	StaleAfter    time.Duration `mapstructure:"staleAfterMinutes"` // minutes
	BatchSize     int           `mapstructure:"batchSize"`
}

// MetricsConfig configures the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
