package token

import (
	"errors"
	"fmt"
	"time"
)

// MinSecretLength is the minimum accepted HMAC secret length in bytes.
// Starting up with a shorter secret is a hard failure, not a warning.
const MinSecretLength = 32

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key. Required, >= MinSecretLength bytes.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TTL is the lifetime of issued tokens (default: 1h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("secret must be at least %d bytes (got: %d)", MinSecretLength, len(c.Secret))
	}
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be positive (got: %s)", c.TTL)
	}
	return nil
}
