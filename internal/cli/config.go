package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/vitalsync/fhir-gateway/internal/idp"
)

// Config is the gatectl config file: the same fields the deployed authorizer
// reads from the secret store, plus the fallback provider domain.
type Config struct {
	Issuer         string   `mapstructure:"issuer"`
	ClientID       string   `mapstructure:"client_id"`
	ClientSecret   string   `mapstructure:"client_secret"`
	Audience       string   `mapstructure:"audience"`
	RequiredScopes []string `mapstructure:"required_scopes"`
	Domain         string   `mapstructure:"domain"`
}

// loadConfig reads the config file at path, with FHIRGW_* environment
// overrides. A missing file yields defaults, not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("issuer", "")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("audience", "")
	v.SetDefault("domain", "")

	// Env overrides: FHIRGW_ISSUER, FHIRGW_CLIENT_ID, etc.
	v.SetEnvPrefix("FHIRGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Read the file if it exists, otherwise fall through to defaults.
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// providerConfig converts the CLI config into the pipeline's config type,
// applying the --issuer flag override.
func (c *Config) providerConfig() *idp.ProviderConfig {
	cfg := &idp.ProviderConfig{
		ClientID:       c.ClientID,
		ClientSecret:   c.ClientSecret,
		Issuer:         c.Issuer,
		Audience:       c.Audience,
		RequiredScopes: c.RequiredScopes,
	}
	if issuer != "" {
		cfg.Issuer = issuer
	}
	return cfg
}
