package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config wraps a viper instance and exposes typed accessors for every
// known configuration key.
type Config struct {
	v *viper.Viper
}

// New creates a Config, registering defaults, loading the optional
// config file, and enabling environment variable overrides.
func New() (*Config, error) {
	v := viper.New()

	for _, o := range Options {
		v.SetDefault(o.Key, o.Default)
	}

	v.SetConfigName("assisted")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/assisted/")
	}
	v.AddConfigPath("/etc/assisted/")

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// An empty ASSISTED_SSO_TOKEN_URL switches to issuer discovery.
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("ASSISTED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}, nil
}

// BindFlags registers each option as a CLI flag on fs and binds it to
// the corresponding viper key so that flag values take precedence.
func (c *Config) BindFlags(fs *pflag.FlagSet, options []Option) error {
	for _, o := range options {
		switch v := o.Default.(type) {
		case string:
			fs.String(o.Flag, v, o.Description)
		case int:
			fs.Int(o.Flag, v, o.Description)
		case bool:
			fs.Bool(o.Flag, v, o.Description)
		case []string:
			fs.StringSlice(o.Flag, v, o.Description)
		case time.Duration:
			fs.Duration(o.Flag, v, o.Description)
		default:
			return fmt.Errorf("unsupported flag type for key: %s", o.Key)
		}

		if err := c.v.BindPFlag(o.Key, fs.Lookup(o.Flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", o.Flag, err)
		}
	}

	return nil
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func (c *Config) ConfigFileUsed() string {
	return c.v.ConfigFileUsed()
}

func (c *Config) APIEndpoint() string {
	return c.v.GetString(keyAPIEndpoint) // ASSISTED_API_ENDPOINT
}

func (c *Config) APIValidateCertificate() bool {
	return c.v.GetBool(keyAPIValidateCertificate) // ASSISTED_API_VALIDATE_CERTIFICATE
}

func (c *Config) APIMaxRetries() int {
	return c.v.GetInt(keyAPIMaxRetries) // ASSISTED_API_MAX_RETRIES
}

func (c *Config) APITimeout() time.Duration {
	return c.v.GetDuration(keyAPITimeout) // ASSISTED_API_TIMEOUT
}

func (c *Config) SSOTokenURL() string {
	return c.v.GetString(keySSOTokenURL) // ASSISTED_SSO_TOKEN_URL
}

func (c *Config) SSOIssuerURL() string {
	return c.v.GetString(keySSOIssuerURL) // ASSISTED_SSO_ISSUER_URL
}

func (c *Config) SSOClientID() string {
	return c.v.GetString(keySSOClientID) // ASSISTED_SSO_CLIENT_ID
}

func (c *Config) LogLevel() string {
	return c.v.GetString(keyLogLevel) // ASSISTED_LOG_LEVEL
}

func (c *Config) LogFormat() string {
	return c.v.GetString(keyLogFormat) // ASSISTED_LOG_FORMAT
}

func (c *Config) LogSyslog() bool {
	return c.v.GetBool(keyLogSyslog) // ASSISTED_LOG_SYSLOG
}

func (c *Config) MetricsTextfile() string {
	return c.v.GetString(keyMetricsTextfile) // ASSISTED_METRICS_TEXTFILE
}
