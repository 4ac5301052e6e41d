package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Alice", cfg.Demo.UserName)
	assert.Equal(t, 28, cfg.Demo.UserAge)
	assert.Equal(t, "alice@example.com", cfg.Demo.UserEmail)
	assert.Equal(t, "newalice@example.com", cfg.Demo.NewEmail)
	assert.Equal(t, time.Second, cfg.Demo.Delay())
	assert.Equal(t, "https://jsonplaceholder.typicode.com/posts", cfg.Demo.FetchURL)
	assert.Zero(t, cfg.Demo.FetchTimeout())
	assert.Equal(t, 3, cfg.Demo.PreviewCount)
	assert.Equal(t, int64(5), cfg.Demo.FactorialInput)

	assert.Equal(t, "none", cfg.Store.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTLDuration())

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "DEMO_USER_NAME=Bob\nDEMO_DELAY_MS=10\nDEMO_FACTORIAL_INPUT=7\nSTORE_DRIVER=sqlite\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Bob", cfg.Demo.UserName)
	assert.Equal(t, 10*time.Millisecond, cfg.Demo.Delay())
	assert.Equal(t, int64(7), cfg.Demo.FactorialInput)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("DEMO_USER_NAME=Bob\n"), 0o600))
	t.Setenv("DEMO_USER_NAME", "Carol")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Carol", cfg.Demo.UserName)
}

func TestLoadConfig_ProductionLoggerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{
			name:     "unknown store driver",
			mutate:   func(c *Config) { c.Store.Driver = "mysql" },
			errorMsg: "Driver must be one of",
		},
		{
			name:     "bad fetch url",
			mutate:   func(c *Config) { c.Demo.FetchURL = "not a url" },
			errorMsg: "FetchURL is invalid",
		},
		{
			name:     "negative delay",
			mutate:   func(c *Config) { c.Demo.DelayMillis = -1 },
			errorMsg: "DelayMillis must be at least 0",
		},
		{
			name: "redis enabled without host",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Host = ""
			},
			errorMsg: "Host is invalid",
		},
		{
			name:     "unknown log format",
			mutate:   func(c *Config) { c.Logger.Format = "xml" },
			errorMsg: "Format must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidate_InvalidEmailsAreLeftToTheEntity(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Demo.NewEmail = "not-an-email"

	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	c := StoreConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}
