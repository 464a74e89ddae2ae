package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.Session.Key)
	assert.Equal(t, "cheat_sheet.pdf", cfg.Assets.DownloadFile)
}

func TestLoad_SessionKeyLength(t *testing.T) {
	t.Setenv("SESSION_KEY", "too-short")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SESSION_KEY", strings.Repeat("k", 32))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Session.Key, 32)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("TRUSTED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.TrustedOrigins)
}

func TestDatabaseConnectionString(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "pw", DBName: "secretgate", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=secretgate sslmode=disable", c.ConnectionString())
}

func TestRedisAddress(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: "6379"}
	assert.Equal(t, "cache:6379", c.Address())
}
