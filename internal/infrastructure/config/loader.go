package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "PS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decode(v, env)
}

// LoadFromViper decodes an already populated viper instance, applying defaults and env overrides
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)
	return decode(v, env)
}

func decode(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 120)     // seconds, generation waits on vendor polling
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)
	v.SetDefault("logger.maxSizeMB", 100)
	v.SetDefault("logger.maxAgeDays", 14)
	v.SetDefault("logger.maxBackups", 5)

	v.SetDefault("auth.mode", "guest")
	v.SetDefault("auth.issuer", "polaroid-studio")
	v.SetDefault("auth.guestInitialCredits", 100)

	v.SetDefault("generator.provider", "nano_banana")
	v.SetDefault("generator.baseURL", "https://api.grsai.com")
	v.SetDefault("generator.model", "nano-banana-fast")
	v.SetDefault("generator.pollIntervalMs", 2000)
	v.SetDefault("generator.maxPollAttempts", 30)
	v.SetDefault("generator.requestTimeout", 30) // seconds

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.backend", "memory")

	v.SetDefault("features.mvpMode", true)

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.reconcileSpec", "@every 1m")
	v.SetDefault("scheduler.staleAfterMinutes", 10)
	v.SetDefault("scheduler.batchSize", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// getEnvironment determines the environment to use based on PS_ENV
func getEnvironment() string {
	env := os.Getenv("PS_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes secrets and connection settings from the environment win over the config file
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"PS_DB_DRIVER":          "database.driver",
		"PS_DB_HOST":            "database.host",
		"PS_DB_PORT":            "database.port",
		"PS_DB_USERNAME":        "database.username",
		"PS_DB_PASSWORD":        "database.password",
		"PS_DB_NAME":            "database.database",
		"PS_DB_SSL_MODE":        "database.sslMode",
		"PS_SERVER_HOST":        "server.host",
		"PS_SERVER_PORT":        "server.port",
		"PS_LOGGER_LEVEL":       "logger.level",
		"PS_AUTH_MODE":          "auth.mode",
		"PS_AUTH_JWT_SECRET":    "auth.jwtSecret",
		"PS_GENERATOR_API_KEY":  "generator.apiKey",
		"PS_GENERATOR_BASE_URL": "generator.baseURL",
		"PS_REDIS_ADDR":         "redis.addr",
		"PS_REDIS_PASSWORD":     "redis.password",
		"PS_HASHID_SALT":        "hashid.salt",
	}
	for name, key := range stringOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}

	if maxOpenConns := getEnvInt("PS_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("PS_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if redisDB := getEnvInt("PS_REDIS_DB", -1); redisDB >= 0 {
		v.Set("redis.db", redisDB)
	}
	if enabled, ok := getEnvBool("PS_REDIS_ENABLED"); ok {
		v.Set("redis.enabled", enabled)
	}
	if mvpMode, ok := getEnvBool("PS_FEATURES_MVP_MODE"); ok {
		v.Set("features.mvpMode", mvpMode)
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvBool(name string) (bool, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return false, false
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, false
	}
	return val, true
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout *= time.Second
	config.Server.WriteTimeout *= time.Second
	config.Server.IdleTimeout *= time.Second
	config.Server.ReadHeaderTimeout *= time.Second
	config.Server.ShutdownTimeout *= time.Second

	config.Database.ConnMaxLifetime *= time.Minute
	config.Database.ConnMaxIdleTime *= time.Minute
	config.Database.QueryTimeout *= time.Second
	config.Database.RetryDelay *= time.Second

	config.Generator.PollInterval *= time.Millisecond
	config.Generator.RequestTimeout *= time.Second

	config.Scheduler.StaleAfter *= time.Minute
}
