package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("KANSO_TEST_ONLY=1\nSTORAGE=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("KANSO_TEST_ONLY")
		os.Unsetenv("STORAGE")
	})
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Rome")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "Europe/Rome", cfg.DefaultTimezone)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Storage: StorageMemory, DefaultTimezone: "UTC"}
		c.Auth.JWTSecret = testSecret
		c.RateLimit.Requests = 10
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Unknown storage", mutate: func(c *Config) { c.Storage = "mongo" }, wantErr: "STORAGE"},
		{name: "Short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "JWT_SECRET"},
		{name: "Bad timezone", mutate: func(c *Config) { c.DefaultTimezone = "Mars/Base" }, wantErr: "DEFAULT_TIMEZONE"},
		{name: "Rate limit", mutate: func(c *Config) { c.RateLimit.Requests = 0 }, wantErr: "RATE_LIMIT_REQUESTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
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

func TestDSN(t *testing.T) {
	c := &Config{}
	c.DB.User = "kanso"
	c.DB.Password = "p@ss word"
	c.DB.Host = "db"
	c.DB.Port = "5432"
	c.DB.Name = "kanso_db"
	c.DB.SSLMode = "disable"

	assert.Equal(t, "postgres://kanso:p%40ss%20word@db:5432/kanso_db?sslmode=disable", c.DSN())
}
