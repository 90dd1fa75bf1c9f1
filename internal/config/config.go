package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	URLSuffix          string `envconfig:"GTRANS_URL_SUFFIX" default:"com"`
	TimeoutSeconds     int    `envconfig:"GTRANS_TIMEOUT_SECONDS" default:"5"`
	HTTPProxy          string `envconfig:"GTRANS_HTTP_PROXY" default:""`
	HTTPSProxy         string `envconfig:"GTRANS_HTTPS_PROXY" default:""`
	Provider           string `envconfig:"GTRANS_PROVIDER" default:"google"`
	GenerateUserAgent  bool   `envconfig:"GTRANS_GENERATE_USER_AGENT" default:"false"`
	VerifyTranslations bool   `envconfig:"GTRANS_VERIFY_TRANSLATIONS" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.TimeoutSeconds < 1 {
		return fmt.Errorf("GTRANS_TIMEOUT_SECONDS must be >= 1")
	}
	if strings.TrimSpace(c.Provider) == "" {
		return fmt.Errorf("GTRANS_PROVIDER is required")
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ProxyMap maps URL schemes to the configured proxy URLs. Nil when no proxy
// is configured.
func (c *Config) ProxyMap() map[string]string {
	if c == nil {
		return nil
	}

	proxies := make(map[string]string, 2)
	if proxy := strings.TrimSpace(c.HTTPProxy); proxy != "" {
		proxies["http"] = proxy
	}
	if proxy := strings.TrimSpace(c.HTTPSProxy); proxy != "" {
		proxies["https"] = proxy
	}
	if len(proxies) == 0 {
		return nil
	}
	return proxies
}
