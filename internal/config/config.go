// Package config handles configuration loading for the gsx CLI.
//
// Configuration is loaded from a YAML file with environment variable
// expansion (${VAR} or $VAR syntax), so the password can be injected
// at runtime instead of living in the file:
//
//	account:
//	  userId: someuser@example.com
//	  password: ${GSX_PASSWORD}
//	  soldTo: "677592"
//
//	service:
//	  environment: it
//	  region: emea
//	  timezone: CEST
//	  locale: en_XXX
//
//	cache:
//	  path: /var/cache/gsx/sessions.db
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/servicetools/go-gsxws/pkg/locale"
)

// Config is the root configuration structure.
type Config struct {
	Account AccountConfig `yaml:"account"`
	Service ServiceConfig `yaml:"service"`
	Cache   CacheConfig   `yaml:"cache"`
}

// AccountConfig holds the GSX credentials.
type AccountConfig struct {
	UserID   string `yaml:"userId"`
	Password string `yaml:"password"`
	SoldTo   string `yaml:"soldTo"`
}

// ServiceConfig selects the service deployment and wire formats.
type ServiceConfig struct {
	Environment string `yaml:"environment"`
	Region      string `yaml:"region"`
	Language    string `yaml:"language"`
	Timezone    string `yaml:"timezone"`
	Locale      string `yaml:"locale"`
}

// CacheConfig holds session cache settings.
type CacheConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Environment == "" {
		c.Service.Environment = string(locale.Testing)
	}
	if c.Service.Region == "" {
		c.Service.Region = "emea"
	}
	if c.Service.Language == "" {
		c.Service.Language = "en"
	}
	if c.Service.Timezone == "" {
		c.Service.Timezone = "CEST"
	}
	if c.Service.Locale == "" {
		c.Service.Locale = locale.DefaultLocale
	}
}

func (c *Config) validate() error {
	if c.Account.UserID == "" {
		return fmt.Errorf("account.userId is required")
	}
	if c.Account.Password == "" {
		return fmt.Errorf("account.password is required")
	}
	if c.Account.SoldTo == "" {
		return fmt.Errorf("account.soldTo is required")
	}

	if !locale.Environment(c.Service.Environment).Valid() {
		return fmt.Errorf("service.environment must be 'pr', 'it' or 'ut', got %q", c.Service.Environment)
	}

	valid := false
	for _, r := range locale.RegionCodes {
		if r == c.Service.Region {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("service.region must be one of %v, got %q", locale.RegionCodes, c.Service.Region)
	}

	return nil
}
