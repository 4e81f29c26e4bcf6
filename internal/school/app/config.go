package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/autoescuela/pkg/httpx"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env                 string        `env:"ENV" envDefault:"dev" validate:"oneof=dev staging prod"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	Port                int           `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// BaseURL is the public web app origin used to build invitation links.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000" validate:"url"`

	Database     DatabaseConfig     `envPrefix:"DATABASE_"`
	Auth         AuthConfig         `envPrefix:"AUTH_"`
	Mail         MailConfig         `envPrefix:"MAIL_"`
	Stripe       StripeConfig       `envPrefix:"STRIPE_"`
	Housekeeping HousekeepingConfig `envPrefix:"HOUSEKEEPING_"`
	RateLimits   httpx.Profiles     `envPrefix:"RATELIMIT_"`
}

type DatabaseConfig struct {
	Driver string `env:"DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	// DSN is a file path (or ":memory:") for sqlite and a connection URL for postgres.
	DSN             string        `env:"DSN" envDefault:"autoescuela.db" validate:"required"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// AuthConfig describes the access tokens minted by the hosted auth provider.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" validate:"required,min=32"`
	Issuer    string        `env:"ISSUER"`
	Audience  []string      `env:"AUDIENCE" envDefault:"authenticated" envSeparator:","`
	Leeway    time.Duration `env:"LEEWAY" envDefault:"30s"`
}

type MailConfig struct {
	Provider       string `env:"PROVIDER" envDefault:"log" validate:"oneof=log sendgrid"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY" validate:"required_if=Provider sendgrid"`
	FromName       string `env:"FROM_NAME" envDefault:"Autoescuela"`
	FromEmail      string `env:"FROM_EMAIL" envDefault:"no-reply@autoescuela.app" validate:"email"`
	SubjectPrefix  string `env:"SUBJECT_PREFIX"`
}

// StripeConfig enables billing when SecretKey is set.
type StripeConfig struct {
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET" validate:"required_with=SecretKey"`
	PriceID       string `env:"PRICE_ID" validate:"required_with=SecretKey"`
	SuccessURL    string `env:"SUCCESS_URL" validate:"omitempty,url"`
	CancelURL     string `env:"CANCEL_URL" validate:"omitempty,url"`
	ReturnURL     string `env:"RETURN_URL" validate:"omitempty,url"`
}

func (c StripeConfig) Enabled() bool { return c.SecretKey != "" }

type HousekeepingConfig struct {
	Enabled   bool          `env:"ENABLED" envDefault:"true"`
	Interval  time.Duration `env:"INTERVAL" envDefault:"1h"`
	Retention time.Duration `env:"RETENTION" envDefault:"720h"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.RateLimits = c.RateLimits.WithDefaults()

	// Billing redirects land back in the web app unless told otherwise.
	if c.Stripe.SuccessURL == "" {
		c.Stripe.SuccessURL = c.BaseURL + "/facturacion?estado=ok"
	}
	if c.Stripe.CancelURL == "" {
		c.Stripe.CancelURL = c.BaseURL + "/facturacion?estado=cancelado"
	}
	if c.Stripe.ReturnURL == "" {
		c.Stripe.ReturnURL = c.BaseURL + "/facturacion"
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid setting by its field path.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
