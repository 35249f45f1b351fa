package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CAMELOT_ADDR", "CAMELOT_ALLOWED_ORIGINS", "CAMELOT_INITIAL_TIME", "CAMELOT_INCREMENT", "CAMELOT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Addr:           ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		InitialTime:    10 * time.Minute,
		Increment:      0,
		LogLevel:       log.LevelInfo,
	}, cfg)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CAMELOT_ADDR", ":8080")
	t.Setenv("CAMELOT_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CAMELOT_INITIAL_TIME", "5m")
	t.Setenv("CAMELOT_INCREMENT", "3s")
	t.Setenv("CAMELOT_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.InitialTime)
	assert.Equal(t, 3*time.Second, cfg.Increment)
	assert.Equal(t, log.LevelDebug, cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CAMELOT_ALLOWED_ORIGINS", " , ")
	t.Setenv("CAMELOT_INITIAL_TIME", "ten minutes")
	t.Setenv("CAMELOT_INCREMENT", "-1s")
	t.Setenv("CAMELOT_LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 4)
	assert.Contains(t, err.Error(), "CAMELOT_INITIAL_TIME")
	assert.Contains(t, err.Error(), "CAMELOT_LOG_LEVEL")
}
