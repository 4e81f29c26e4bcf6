package app

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/autoescuela/internal/school/mail"
	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/aussiebroadwan/autoescuela/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testJWTSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "autoescuela.db", cfg.Database.DSN)
	require.Equal(t, []string{"authenticated"}, cfg.Auth.Audience)
	require.Equal(t, "log", cfg.Mail.Provider)
	require.False(t, cfg.Stripe.Enabled())
	require.Equal(t, "http://localhost:3000/facturacion", cfg.Stripe.ReturnURL)
	require.True(t, cfg.Housekeeping.Enabled)
	require.Equal(t, 30*24*time.Hour, cfg.Housekeeping.Retention)
	require.Equal(t, httpx.StrictLimit, cfg.RateLimits.Strict)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("APP_BASE_URL", "https://app.autoescuela.es/")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/school?sslmode=disable")
	t.Setenv("AUTH_AUDIENCE", "authenticated,service")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "3")
	t.Setenv("RATELIMIT_STRICT_WINDOW", "30s")
	t.Setenv("RATELIMIT_STRICT_BURST", "2")
	t.Setenv("HOUSEKEEPING_INTERVAL", "15m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "https://app.autoescuela.es", cfg.BaseURL)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, []string{"authenticated", "service"}, cfg.Auth.Audience)
	require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 3, Window: 30 * time.Second, Burst: 2}, cfg.RateLimits.Strict)
	require.Equal(t, httpx.ModerateLimit, cfg.RateLimits.Moderate)
	require.Equal(t, 15*time.Minute, cfg.Housekeeping.Interval)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", "")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "JWTSecret")
	})

	t.Run("sendgrid without key", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", testJWTSecret)
		t.Setenv("MAIL_PROVIDER", "sendgrid")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "SendGridAPIKey")
	})

	t.Run("stripe without webhook secret", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", testJWTSecret)
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
		t.Setenv("STRIPE_PRICE_ID", "price_123")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "WebhookSecret")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("AUTH_JWT_SECRET", testJWTSecret)
		t.Setenv("DATABASE_DRIVER", "mysql")
		_, err := LoadConfig()
		require.ErrorContains(t, err, "Driver")
	})
}

func TestDependencies(t *testing.T) {
	st, err := OpenStore(context.Background(), DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
	require.NoError(t, st.Close())

	_, err = OpenStore(context.Background(), DatabaseConfig{Driver: "mysql", DSN: "x"})
	require.Error(t, err)

	_, ok := NewMailer(MailConfig{Provider: "log"}, slogx.Discard()).(*mail.LogMailer)
	require.True(t, ok)
	_, ok = NewMailer(MailConfig{Provider: "sendgrid", SendGridAPIKey: "SG.x"}, slogx.Discard()).(*mail.SendGridMailer)
	require.True(t, ok)

	require.Nil(t, NewBillingProvider(StripeConfig{}))
	require.NotNil(t, NewBillingProvider(StripeConfig{SecretKey: "sk_test_123"}))

	_, err = NewVerifier(AuthConfig{})
	require.Error(t, err)
}
