package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("ACCESS_TOKEN_LIFETIME", "90m")
	t.Setenv("CONFIRMATION_CODE_LENGTH", "8")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 90*time.Minute, cfg.Auth.AccessTokenLifetime)
	assert.Equal(t, 8, cfg.Auth.ConfirmationCodeLength)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = Load()
	assert.Error(t, err)
}
