package config

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	InitialTime    time.Duration // 0 plays untimed
	Increment      time.Duration
	LogLevel       log.Level
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"fatal": log.LevelFatal,
	"panic": log.LevelPanic,
}

// Load reads the server configuration from CAMELOT_* environment variables.
// Every invalid value is reported.
func Load() (Config, error) {
	cfg := Config{
		Addr:           getenv("CAMELOT_ADDR", ":3000"),
		AllowedOrigins: splitList(getenv("CAMELOT_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	var result *multierror.Error
	var err error
	if cfg.InitialTime, err = duration("CAMELOT_INITIAL_TIME", "10m"); err != nil {
		result = multierror.Append(result, err)
	}
	if cfg.Increment, err = duration("CAMELOT_INCREMENT", "0s"); err != nil {
		result = multierror.Append(result, err)
	}

	level := strings.ToLower(getenv("CAMELOT_LOG_LEVEL", "info"))
	var ok bool
	if cfg.LogLevel, ok = logLevels[level]; !ok {
		result = multierror.Append(result, errors.Errorf("CAMELOT_LOG_LEVEL: unknown level %q", level))
	}

	if len(cfg.AllowedOrigins) == 0 {
		result = multierror.Append(result, errors.New("CAMELOT_ALLOWED_ORIGINS: no origins given"))
	}

	return cfg, result.ErrorOrNil()
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func duration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getenv(key, fallback))
	if err != nil {
		return 0, errors.Wrap(err, key)
	}
	if d < 0 {
		return 0, errors.Errorf("%s: negative duration %s", key, d)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
