package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/notify"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/projection"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	DefaultHorizon   = 12
	MaxHorizon       = projection.MaxHorizon
	DefaultHTTPAddr  = ":8080"
	DefaultSweepSpec = "@hourly"
	DefaultUser      = "default"
	DefaultCurrency  = money.USD
)

// Config holds application configuration.
type Config struct {
	DBPath    string
	UserID    string
	Horizon   int
	LogLevel  logrus.Level
	HTTPAddr  string
	SweepSpec string
	RemoteDSN string
	Currency  string
	SMTP      notify.SMTPConfig
}

// Load reads configuration from NUMORAQ_* environment variables.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, defaultVal string) string {
		if value, exists := lookup(key); exists && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return defaultVal
	}

	dbPath := getEnv("NUMORAQ_DB", "")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".numoraq", "numoraq.db")
	}

	horizon, err := strconv.Atoi(getEnv("NUMORAQ_HORIZON", strconv.Itoa(DefaultHorizon)))
	if err != nil {
		return nil, fmt.Errorf("NUMORAQ_HORIZON must be an integer: %w", err)
	}
	if horizon < 0 || horizon > MaxHorizon {
		return nil, fmt.Errorf("NUMORAQ_HORIZON must be between 0 and %d, got %d", MaxHorizon, horizon)
	}

	level, err := logrus.ParseLevel(getEnv("NUMORAQ_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("NUMORAQ_LOG_LEVEL: %w", err)
	}

	spec := getEnv("NUMORAQ_SWEEP_SPEC", DefaultSweepSpec)
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("NUMORAQ_SWEEP_SPEC %q: %w", spec, err)
	}

	currency := strings.ToUpper(getEnv("NUMORAQ_CURRENCY", DefaultCurrency))
	if money.GetCurrency(currency) == nil {
		return nil, fmt.Errorf("NUMORAQ_CURRENCY %q is not a known ISO 4217 code", currency)
	}

	cfg := &Config{
		DBPath:    dbPath,
		UserID:    getEnv("NUMORAQ_USER", DefaultUser),
		Horizon:   horizon,
		LogLevel:  level,
		HTTPAddr:  getEnv("NUMORAQ_HTTP_ADDR", DefaultHTTPAddr),
		SweepSpec: spec,
		RemoteDSN: getEnv("NUMORAQ_REMOTE_DSN", ""),
		Currency:  currency,
		SMTP: notify.SMTPConfig{
			Host:     getEnv("NUMORAQ_SMTP_HOST", ""),
			Port:     getEnv("NUMORAQ_SMTP_PORT", "587"),
			Username: getEnv("NUMORAQ_SMTP_USER", ""),
			Password: getEnv("NUMORAQ_SMTP_PASSWORD", ""),
			From:     getEnv("NUMORAQ_NOTIFY_FROM", "numoraq@localhost"),
			To:       splitList(getEnv("NUMORAQ_NOTIFY_TO", "")),
		},
	}
	if _, err := strconv.Atoi(cfg.SMTP.Port); err != nil {
		return nil, fmt.Errorf("NUMORAQ_SMTP_PORT must be numeric: %w", err)
	}
	return cfg, nil
}

// RemoteEnabled reports whether cloud sync has somewhere to go.
func (c *Config) RemoteEnabled() bool {
	return c.RemoteDSN != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
