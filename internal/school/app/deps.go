package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/autoescuela/internal/school/billing"
	"github.com/aussiebroadwan/autoescuela/internal/school/mail"
	"github.com/aussiebroadwan/autoescuela/internal/school/store"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/postgres"
	"github.com/aussiebroadwan/autoescuela/internal/school/store/drivers/sqlite"
	"github.com/aussiebroadwan/autoescuela/pkg/jwtx"
)

// OpenStore connects to the configured database. Migrations are not applied.
func OpenStore(ctx context.Context, cfg DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		st, err := postgres.NewStore(ctx, cfg.DSN, postgres.Options{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return st, nil
	case "sqlite", "":
		st, err := sqlite.NewStore(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// NewMailer returns the configured mailer. The log mailer is used outside
// production when no provider is set up.
func NewMailer(cfg MailConfig, logger *slog.Logger) mail.Mailer {
	if cfg.Provider == "sendgrid" {
		logger.Info("email delivery via sendgrid", slog.String("from", cfg.FromEmail))
		return mail.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail, cfg.SubjectPrefix)
	}
	logger.Warn("email delivery disabled; messages are only logged")
	return mail.NewLogMailer()
}

// NewBillingProvider returns nil when Stripe is not configured, which leaves
// billing endpoints answering billing_disabled.
func NewBillingProvider(cfg StripeConfig) billing.Provider {
	if !cfg.Enabled() {
		return nil
	}
	return billing.NewStripe(billing.StripeConfig{
		APIKey:        cfg.SecretKey,
		WebhookSecret: cfg.WebhookSecret,
		PriceID:       cfg.PriceID,
		SuccessURL:    cfg.SuccessURL,
		CancelURL:     cfg.CancelURL,
		ReturnURL:     cfg.ReturnURL,
	})
}

// NewVerifier builds the access token verifier for the hosted auth provider.
func NewVerifier(cfg AuthConfig) (jwtx.Verifier, error) {
	v, err := jwtx.NewHS256Verifier([]byte(cfg.JWTSecret), jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Leeway:   cfg.Leeway,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build token verifier: %w", err)
	}
	return v, nil
}
