package playerok

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
)

// LoadConfig builds a Config from defaults, an optional YAML file at path
// and PLAYEROK_* environment variables, in increasing precedence. An empty
// path or a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("access_token", "")
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("user_agent", "")
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("use_identity_map", defaults.UseIdentityMap)
	v.SetDefault("retry_max", defaults.RetryMax)
	v.SetDefault("retry_wait_min", defaults.RetryWaitMin)
	v.SetDefault("retry_wait_max", defaults.RetryWaitMax)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("persisted_queries", map[string]string{})

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	config := &Config{}

	err := v.Unmarshal(config)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return config, nil
}

// WriteYAML persists the config at path. The access token is never written.
func (c *Config) WriteYAML(path string) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}

// Normalize fills unset fields with defaults and canonicalises BaseURL: a
// missing scheme becomes https and a trailing slash is added so that
// relative paths resolve under it.
func (c *Config) Normalize() {
	defaults := DefaultConfig()

	if c.AccessToken == "" {
		c.AccessToken = os.Getenv(constants.EnvAccessToken)
	}

	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(constants.EnvBaseURL)
	}

	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}

	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		c.BaseURL = "https://" + c.BaseURL
	}

	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}

	if c.RetryWaitMin <= 0 {
		c.RetryWaitMin = defaults.RetryWaitMin
	}

	if c.RetryWaitMax <= 0 {
		c.RetryWaitMax = defaults.RetryWaitMax
	}
}

// Validate checks that the config can start a session.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrAccessTokenRequired
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrBaseURLInvalid, c.BaseURL)
	}

	if c.RetryMax < 0 {
		return InvalidArgumentError("retry_max must not be negative, got %d", c.RetryMax)
	}

	return nil
}
