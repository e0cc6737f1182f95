package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(kv map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := kv[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(map[string]string{"NUMORAQ_DB": "/tmp/n.db"}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/n.db", cfg.DBPath)
	assert.Equal(t, DefaultUser, cfg.UserID)
	assert.Equal(t, DefaultHorizon, cfg.Horizon)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultSweepSpec, cfg.SweepSpec)
	assert.False(t, cfg.RemoteEnabled())
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoad_DefaultDBUnderHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg, err := load(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.numoraq/numoraq.db", cfg.DBPath)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envOf(map[string]string{
		"NUMORAQ_DB":         "/data/x.db",
		"NUMORAQ_USER":       "alex",
		"NUMORAQ_HORIZON":    "36",
		"NUMORAQ_LOG_LEVEL":  "debug",
		"NUMORAQ_SWEEP_SPEC": "*/15 * * * *",
		"NUMORAQ_REMOTE_DSN": "postgres://u:p@localhost/numoraq?sslmode=disable",
		"NUMORAQ_SMTP_HOST":  "smtp.example.com",
		"NUMORAQ_SMTP_PORT":  "2525",
		"NUMORAQ_NOTIFY_TO":  "a@example.com, b@example.com,",
		"NUMORAQ_CURRENCY":   "brl",
	}))
	require.NoError(t, err)

	assert.Equal(t, "alex", cfg.UserID)
	assert.Equal(t, 36, cfg.Horizon)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "*/15 * * * *", cfg.SweepSpec)
	assert.True(t, cfg.RemoteEnabled())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.SMTP.To)
	assert.Equal(t, "2525", cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "BRL", cfg.Currency)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric horizon": {"NUMORAQ_HORIZON": "twelve"},
		"negative horizon":    {"NUMORAQ_HORIZON": "-1"},
		"huge horizon":        {"NUMORAQ_HORIZON": "100000"},
		"bad level":           {"NUMORAQ_LOG_LEVEL": "loud"},
		"bad cron spec":       {"NUMORAQ_SWEEP_SPEC": "whenever"},
		"bad smtp port":       {"NUMORAQ_SMTP_PORT": "smtp"},
		"unknown currency":    {"NUMORAQ_CURRENCY": "ZZZ"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			env["NUMORAQ_DB"] = "/tmp/n.db"
			_, err := load(envOf(env))
			assert.Error(t, err)
		})
	}
}
