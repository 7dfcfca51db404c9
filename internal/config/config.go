package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL"`
	// SessionSecret is accepted for deploy-environment compatibility. Bearer
	// tokens are opaque random values, not signed, so the secret only gets a
	// strength check.
	SessionSecret      string `env:"SESSION_SECRET"`
	RecaptchaSecretKey string `env:"RECAPTCHA_SECRET_KEY"`
	ResendAPIKey       string `env:"RESEND_API_KEY"`
	ResendFromEmail    string `env:"RESEND_FROM_EMAIL" envDefault:"Flow Coaching <bilgi@in-flowtr.com>"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	AllowedOrigins     string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate checks for production misconfiguration. A production instance
// without the external integrations still starts, but loudly.
func (c *Config) Validate(isProduction bool) error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d is out of range", c.Port)
	}

	if isProduction {
		if c.SessionSecret != "" {
			if err := validateSecret("SESSION_SECRET", c.SessionSecret); err != nil {
				return err
			}
		}
		if c.RecaptchaSecretKey == "" {
			log.Warn().Msg("RECAPTCHA_SECRET_KEY is empty in production: lead form verification disabled")
		}
		if c.ResendAPIKey == "" {
			log.Warn().Msg("RESEND_API_KEY is empty in production: lead notifications disabled")
		}
		if c.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is empty in production: chat replies will fail")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
