package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "HOST", "PORT", "POSTGRES_URI", "REDIS_URI", "MONGODB_URI", "MONGO_URI",
		"FRONTEND_URL", "FRONTEND_URL_2", "ALLOWED_ORIGINS", "RECEIPT_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:3000")
}

func TestLoadProductionHostCheck(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.safaria.ma:8443/base")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.safaria.ma", cfg.AllowedHost)

	// Apex and www origins derive from the api subdomain.
	assert.Contains(t, cfg.AllowedOrigins, "https://safaria.ma")
	assert.Contains(t, cfg.AllowedOrigins, "https://www.safaria.ma")
}

func TestLoadExplicitOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://one.example.com, https://two.example.com")

	cfg := Load()
	assert.Contains(t, cfg.AllowedOrigins, "https://one.example.com")
	assert.Contains(t, cfg.AllowedOrigins, "https://two.example.com")
}

func TestStripToHostname(t *testing.T) {
	assert.Equal(t, "api.safaria.ma", stripToHostname("https://api.safaria.ma"))
	assert.Equal(t, "api.safaria.ma", stripToHostname("http://api.safaria.ma:8080/path"))
	assert.Equal(t, "localhost", stripToHostname("localhost:8080"))
}
