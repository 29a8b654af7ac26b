package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/stitchesx/stitchesx/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Supabase   SupabaseConfig   `validate:"required"`
	Stripe     StripeConfig
	Email      EmailConfig
	Billing    BillingConfig
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// SupabaseConfig holds the hosted backend credentials. The service key is
// used for the PostgREST data plane and admin auth operations; the JWT
// secret verifies user access tokens.
type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"required"`
	AnonKey    string `mapstructure:"anon_key"`
	ServiceKey string `mapstructure:"service_key" validate:"required"`
	JWTSecret  string `mapstructure:"jwt_secret" validate:"required"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
}

type EmailConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	APIKey        string `mapstructure:"api_key"`
	FromAddress   string `mapstructure:"from_address"`
	ReplyTo       string `mapstructure:"reply_to"`
	ContactInbox  string `mapstructure:"contact_inbox"`
	FeedbackInbox string `mapstructure:"feedback_inbox"`
}

// BillingConfig carries the free-tier limits. Defaults match the product
// contract: one free invoice for guests, two for registered users.
type BillingConfig struct {
	GuestFreeLimit      int `mapstructure:"guest_free_limit"`
	RegisteredFreeLimit int `mapstructure:"registered_free_limit"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars still take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stitchesx")

	v.SetEnvPrefix("STITCHESX")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeAPI))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("billing.guest_free_limit", types.GuestFreeInvoiceLimit)
	v.SetDefault("billing.registered_free_limit", types.RegisteredFreeInvoiceLimit)
	v.SetDefault("sentry.sample_rate", 1.0)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetDefaultConfig returns a default configuration for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Supabase: SupabaseConfig{
			BaseURL:    "http://localhost:54321",
			ServiceKey: "test-service-key",
			JWTSecret:  "test-jwt-secret",
		},
		Billing: BillingConfig{
			GuestFreeLimit:      types.GuestFreeInvoiceLimit,
			RegisteredFreeLimit: types.RegisteredFreeInvoiceLimit,
		},
	}
}
