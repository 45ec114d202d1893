package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parseMap(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/tracker.db", cfg.SQLitePath)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.False(t, cfg.BotEnabled)
	assert.Zero(t, cfg.ReplyDelayMaxMs)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parseMap(map[string]string{
		"PORT":               "9090",
		"TZ_NAME":            "America/Chicago",
		"BOT_ENABLED":        "true",
		"REPLY_DELAY_MIN_MS": "500",
		"REPLY_DELAY_MAX_MS": "1500",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.BotEnabled)
	assert.Equal(t, 500, cfg.ReplyDelayMinMs)
	assert.Equal(t, 1500, cfg.ReplyDelayMaxMs)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", loc.String())
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown timezone":  {"TZ_NAME": "Mars/Olympus_Mons"},
		"malformed integer": {"REPLY_DELAY_MIN_MS": "soon"},
		"max below min":     {"REPLY_DELAY_MIN_MS": "2000", "REPLY_DELAY_MAX_MS": "1000"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseMap(vars)
			assert.Error(t, err)
		})
	}
}
