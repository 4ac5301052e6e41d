package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"user-demo/pkg/validation"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Demo   DemoConfig
	Store  StoreConfig
	Redis  RedisConfig
}

// AppConfig holds process-level settings
type AppConfig struct {
	Env                    string `mapstructure:"APP_ENV" validate:"required"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gte=1"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn warning error dpanic panic fatal"`
	Format           string  `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS" validate:"gte=0"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME" validate:"required"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// DemoConfig holds the inputs of the demo routine
type DemoConfig struct {
	UserName            string `mapstructure:"DEMO_USER_NAME" validate:"required"`
	UserAge             int    `mapstructure:"DEMO_USER_AGE" validate:"gte=0"`
	UserEmail           string `mapstructure:"DEMO_USER_EMAIL" validate:"required"`
	NewEmail            string `mapstructure:"DEMO_NEW_EMAIL" validate:"required"`
	DelayMillis         int    `mapstructure:"DEMO_DELAY_MS" validate:"gte=0"`
	FetchURL            string `mapstructure:"DEMO_FETCH_URL" validate:"required,url"`
	FetchTimeoutSeconds int    `mapstructure:"FETCH_TIMEOUT_SECONDS" validate:"gte=0"`
	PreviewCount        int    `mapstructure:"DEMO_PREVIEW_COUNT" validate:"gte=0"`
	FactorialInput      int64  `mapstructure:"DEMO_FACTORIAL_INPUT"`
}

// StoreConfig holds configuration for the run history store
type StoreConfig struct {
	Driver     string `mapstructure:"STORE_DRIVER" validate:"oneof=none sqlite postgres"`
	SQLitePath string `mapstructure:"STORE_SQLITE_PATH" validate:"required_if=Driver sqlite"`
	Host       string `mapstructure:"DB_HOST" validate:"required_if=Driver postgres"`
	Port       string `mapstructure:"DB_PORT" validate:"required_if=Driver postgres"`
	User       string `mapstructure:"DB_USER"`
	Password   string `mapstructure:"DB_PASSWORD"`
	Name       string `mapstructure:"DB_NAME" validate:"required_if=Driver postgres"`
	SSLMode    string `mapstructure:"DB_SSLMODE"`
}

// RedisConfig holds configuration for the run history cache
type RedisConfig struct {
	Enabled    bool   `mapstructure:"REDIS_ENABLED"`
	Host       string `mapstructure:"REDIS_HOST" validate:"required_if=Enabled true"`
	Port       string `mapstructure:"REDIS_PORT" validate:"required_if=Enabled true"`
	Password   string `mapstructure:"REDIS_PASSWORD"`
	DB         int    `mapstructure:"REDIS_DB" validate:"gte=0"`
	MaxRetries int    `mapstructure:"REDIS_MAX_RETRIES" validate:"gte=0"`
	PoolSize   int    `mapstructure:"REDIS_POOL_SIZE" validate:"gte=1"`
	CacheTTL   int    `mapstructure:"REDIS_CACHE_TTL_SECONDS" validate:"gte=1"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.App.Env = v.GetString("APP_ENV")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Demo.UserName = v.GetString("DEMO_USER_NAME")
	config.Demo.UserAge = v.GetInt("DEMO_USER_AGE")
	config.Demo.UserEmail = v.GetString("DEMO_USER_EMAIL")
	config.Demo.NewEmail = v.GetString("DEMO_NEW_EMAIL")
	config.Demo.DelayMillis = v.GetInt("DEMO_DELAY_MS")
	config.Demo.FetchURL = v.GetString("DEMO_FETCH_URL")
	config.Demo.FetchTimeoutSeconds = v.GetInt("FETCH_TIMEOUT_SECONDS")
	config.Demo.PreviewCount = v.GetInt("DEMO_PREVIEW_COUNT")
	config.Demo.FactorialInput = v.GetInt64("DEMO_FACTORIAL_INPUT")

	config.Store.Driver = v.GetString("STORE_DRIVER")
	config.Store.SQLitePath = v.GetString("STORE_SQLITE_PATH")
	config.Store.Host = v.GetString("DB_HOST")
	config.Store.Port = v.GetString("DB_PORT")
	config.Store.User = v.GetString("DB_USER")
	config.Store.Password = v.GetString("DB_PASSWORD")
	config.Store.Name = v.GetString("DB_NAME")
	config.Store.SSLMode = v.GetString("DB_SSLMODE")

	config.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.CacheTTL = v.GetInt("REDIS_CACHE_TTL_SECONDS")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 5)

	// Logger defaults
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "user-demo")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("DEMO_USER_NAME", "Alice")
	v.SetDefault("DEMO_USER_AGE", 28)
	v.SetDefault("DEMO_USER_EMAIL", "alice@example.com")
	v.SetDefault("DEMO_NEW_EMAIL", "newalice@example.com")
	v.SetDefault("DEMO_DELAY_MS", 1000)
	v.SetDefault("DEMO_FETCH_URL", "https://jsonplaceholder.typicode.com/posts")
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 0)
	v.SetDefault("DEMO_PREVIEW_COUNT", 3)
	v.SetDefault("DEMO_FACTORIAL_INPUT", 5)

	v.SetDefault("STORE_DRIVER", "none")
	v.SetDefault("STORE_SQLITE_PATH", "user-demo.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "user_demo")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_CACHE_TTL_SECONDS", 300)
}

// Validate checks the loaded configuration for obviously broken values.
// Email shapes are not checked here; the user entity reports them when the routine runs.
func (c *Config) Validate() error {
	if err := validation.New().Struct(c); err != nil {
		return validation.FormatValidationError(err)
	}
	return nil
}

// DSN returns the PostgreSQL Data Source Name
func (c *StoreConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Delay returns the configured suspension before the email update
func (c *DemoConfig) Delay() time.Duration {
	return time.Duration(c.DelayMillis) * time.Millisecond
}

// FetchTimeout returns the HTTP client timeout; zero means the transport default
func (c *DemoConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTLDuration returns the cache TTL as a time.Duration
func (c *RedisConfig) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}
