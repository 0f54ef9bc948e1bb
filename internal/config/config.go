package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultAPIBaseURL = "http://localhost:5000/api"

type Config struct {
	APIBaseURL     string
	APITimeoutSecs int

	SplashSecs     int
	MinLoadingSecs int

	ExportDir string

	LogFile  string
	LogLevel string

	SSHHost        string
	SSHPort        int
	SSHHostKeyPath string

	HTTPAddr string

	// Warnings lists invalid settings that were replaced by defaults. Load
	// runs before any logger exists, so callers log these themselves.
	Warnings []string
}

func Load() *Config {
	cfg := &Config{}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("TRADEPRO_API_URL")), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	cfg.APITimeoutSecs = cfg.positiveInt("TRADEPRO_API_TIMEOUT_SECS", 30)
	cfg.SplashSecs = cfg.positiveInt("TRADEPRO_SPLASH_SECS", 3)

	cfg.MinLoadingSecs = 8
	if v := strings.TrimSpace(os.Getenv("TRADEPRO_MIN_LOADING_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MinLoadingSecs = n
		} else {
			cfg.warnf("invalid TRADEPRO_MIN_LOADING_SECS=%q, using %d", v, cfg.MinLoadingSecs)
		}
	}

	cfg.ExportDir = strings.TrimSpace(os.Getenv("TRADEPRO_EXPORT_DIR"))
	if cfg.ExportDir == "" {
		cfg.ExportDir = "exports"
	}

	cfg.LogFile = strings.TrimSpace(os.Getenv("TRADEPRO_LOG_FILE"))
	if cfg.LogFile == "" {
		cfg.LogFile = "tradepro.log"
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("TRADEPRO_LOG_LEVEL")))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	case "":
		cfg.LogLevel = "info"
	default:
		cfg.warnf("unsupported TRADEPRO_LOG_LEVEL=%q, defaulting to info", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	cfg.SSHHost = strings.TrimSpace(os.Getenv("TRADEPRO_SSH_HOST"))
	if cfg.SSHHost == "" {
		cfg.SSHHost = "0.0.0.0"
	}
	cfg.SSHPort = cfg.positiveInt("TRADEPRO_SSH_PORT", 23234)
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("TRADEPRO_SSH_HOST_KEY"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/tradepro_ed25519"
	}

	cfg.HTTPAddr = httpAddr(strings.TrimSpace(os.Getenv("PORT")))

	return cfg
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *Config) positiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		c.warnf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func httpAddr(port string) string {
	if port == "" {
		return ":5000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
