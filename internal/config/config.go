// Package config loads service configuration from an optional .env file and
// the environment, and validates it before anything starts. A missing or
// short signing secret aborts startup; there is no insecure default.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/identity-service/internal/auth/password"
	"github.com/skillsenselab/identity-service/internal/auth/token"
	"github.com/skillsenselab/identity-service/internal/database"
	"github.com/skillsenselab/identity-service/internal/logger"
	"github.com/skillsenselab/identity-service/internal/observability"
	"github.com/skillsenselab/identity-service/internal/server"
)

// ServiceName identifies this service in logs, telemetry, and endpoints.
const ServiceName = "identity-service"

// AppConfig is the full service configuration, built once at process start
// and passed by reference into constructors. It is never mutated afterwards.
type AppConfig struct {
	Server        server.Config        `mapstructure:"server"`
	Log           logger.Config        `mapstructure:"log"`
	Token         token.Config         `mapstructure:"token"`
	Password      password.Config      `mapstructure:"password"`
	Database      database.Config      `mapstructure:"database"`
	Observability observability.Config `mapstructure:"observability"`
}

// legacyEnvBindings maps the flat environment variable names used by the
// previous backend onto config keys, so existing deployments keep working.
var legacyEnvBindings = map[string]string{
	"server.port":          "PORT",
	"token.secret":         "JWT_SECRET",
	"token.ttl":            "JWT_EXPIRATION",
	"database.dsn":         "DATABASE_URL",
	"log.level":            "LOG_LEVEL",
	"password.bcrypt_cost": "BCRYPT_COST",
}

// Load reads configuration from an optional config.yml, an optional .env
// file, and the process environment, then applies defaults and validates.
func Load() (*AppConfig, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile("config.yml")
	if _, err := os.Stat("config.yml"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read config.yml: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range legacyEnvBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills in defaults across all sections.
func (c *AppConfig) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks all sections and fails on the first violation.
func (c *AppConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("config: token: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("config: password: %w", err)
	}
	return nil
}
