package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("VERIFY_TOKEN", "verify")
	t.Setenv("APP_SECRET", "secret")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example/api/webhooks/1/abc")
	t.Setenv("PAGE_ACCESS_TOKEN", "page-token")
}

func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.0.0.0:3000", HTTPConfig{Host: "0.0.0.0", Port: "3000"}.Addr())
	require.Equal(t, "[::1]:8080", HTTPConfig{Host: "::1", Port: "8080"}.Addr())
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "verify", cfg.Meta.VerifyToken)
	require.Equal(t, "secret", cfg.Meta.AppSecret)
	require.Equal(t, "page-token", cfg.Graph.PageAccessToken)
	require.Equal(t, "https://discord.example/api/webhooks/1/abc", cfg.Discord.WebhookURL)

	require.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	require.Equal(t, int64(1<<20), cfg.HTTP.MaxBodyBytes)
	require.Zero(t, cfg.HTTP.MaxConnections)
	require.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "https://graph.facebook.com", cfg.Graph.BaseURL)
	require.Equal(t, "v18.0", cfg.Graph.Version)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.TokenCheckCron)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("MAX_CONNECTIONS", "64")
	t.Setenv("GRAPH_API_VERSION", "v19.0")
	t.Setenv("TOKEN_CHECK_CRON", "0 */6 * * *")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, 64, cfg.HTTP.MaxConnections)
	require.Equal(t, "v19.0", cfg.Graph.Version)
	require.Equal(t, "0 */6 * * *", cfg.TokenCheckCron)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"VERIFY_TOKEN", "APP_SECRET", "DISCORD_WEBHOOK_URL", "PAGE_ACCESS_TOKEN"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_RejectsBadLimits(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_BODY_BYTES", "0")

	_, err := Load()
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}
