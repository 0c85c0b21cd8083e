package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10, cfg.Chat.HistoryLimit)
	assert.Equal(t, time.Second, cfg.Chat.ResponseDelayMin)
	assert.Equal(t, 3*time.Second, cfg.Chat.ResponseDelayMax)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("WS_ALLOWED_ORIGINS", "http://localhost:5173,https://example.com")
	t.Setenv("CHAT_HISTORY_LIMIT", "5")
	t.Setenv("CHAT_RESPONSE_DELAY_MIN", "10ms")
	t.Setenv("CHAT_RESPONSE_DELAY_MAX", "20ms")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173", "https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5, cfg.Chat.HistoryLimit)
	assert.Equal(t, 10*time.Millisecond, cfg.Chat.ResponseDelayMin)
	assert.Equal(t, 20*time.Millisecond, cfg.Chat.ResponseDelayMax)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"port with space":  {"PORT": "80 80"},
		"zero history":     {"CHAT_HISTORY_LIMIT": "0"},
		"bad duration":     {"CHAT_RESPONSE_DELAY_MIN": "soon"},
		"max below min":    {"CHAT_RESPONSE_DELAY_MIN": "2s", "CHAT_RESPONSE_DELAY_MAX": "1s"},
		"non numeric size": {"CHAT_HISTORY_LIMIT": "ten"},
	}

	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestResolveAddr(t *testing.T) {
	addr, err := resolveAddr("3000")
	require.NoError(t, err)
	assert.Equal(t, ":3000", addr)

	addr, err = resolveAddr(":3000")
	require.NoError(t, err)
	assert.Equal(t, ":3000", addr)
}
