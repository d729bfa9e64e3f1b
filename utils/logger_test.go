package utils

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamdb-api/config"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() {
		_ = InitLogger(config.Log{Level: "info"})
	})

	require.NoError(t, InitLogger(config.Log{Level: "debug", Format: "json"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	require.NoError(t, InitLogger(config.Log{Level: "bogus"}))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	file := filepath.Join(t.TempDir(), "yamdb.log")
	require.NoError(t, InitLogger(config.Log{Level: "warn", File: file}))
	logrus.Warn("rotated")
	matches, err := filepath.Glob(file + ".*")
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}
