// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all configuration environment variables,
// e.g. GCP_TF_MCP_LOG_LEVEL.
const EnvPrefix = "GCP_TF_MCP"

// Config holds the runtime configuration of the server.
type Config struct {
	// LogLevel is a logrus level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// TerraformPath is the terraform binary invoked for workflow
	// operations and module materialization.
	TerraformPath string `mapstructure:"terraform_path"`

	// CheckovPath is the checkov binary invoked for security scans.
	CheckovPath string `mapstructure:"checkov_path"`

	// RegistryBaseURL is the Terraform registry endpoint.
	RegistryBaseURL string `mapstructure:"registry_base_url"`

	// HTTPTimeout bounds registry API calls.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("terraform_path", "terraform")
	v.SetDefault("checkov_path", "checkov")
	v.SetDefault("registry_base_url", "https://registry.terraform.io")
	v.SetDefault("http_timeout", 30*time.Second)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.RegistryBaseURL = strings.TrimRight(cfg.RegistryBaseURL, "/")

	return &cfg, nil
}
