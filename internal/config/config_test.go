package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "JWT_SECRET", "JWT_SECRET_FILE", "JWT_EXPIRY", "CREDENTIAL_BACKEND", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gym_tracker", cfg.MongoDatabase)
	assert.Equal(t, BackendMongo, cfg.CredentialBackend)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_SECRET_FILE", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrInsecureSecret)
}

func TestLoadSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jwt_secret")
	require.NoError(t, os.WriteFile(path, []byte("from-file-secret\n"), 0o600))

	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_SECRET_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file-secret", cfg.JWTSecret)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad expiry", key: "JWT_EXPIRY", value: "soon"},
		{name: "negative expiry", key: "JWT_EXPIRY", value: "-1m"},
		{name: "unknown backend", key: "CREDENTIAL_BACKEND", value: "postgres"},
		{name: "bad rps", key: "AUTH_RATE_RPS", value: "fast"},
		{name: "bad burst", key: "AUTH_RATE_BURST", value: "1.5"},
		{name: "negative rps", key: "AUTH_RATE_RPS", value: "-5"},
		{name: "zero rps", key: "AUTH_RATE_RPS", value: "0"},
		{name: "zero burst", key: "AUTH_RATE_BURST", value: "0"},
		{name: "negative burst", key: "AUTH_RATE_BURST", value: "-1"},
		{name: "missing secret file", key: "JWT_SECRET_FILE", value: "/nonexistent/secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
