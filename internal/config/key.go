// Package config provides unified configuration loading from files,
// environment variables, and CLI flags using viper and pflag. These
// values are the shared defaults every module invocation starts from.
//
// Resolution order (highest wins):
//  1. CLI flags
//  2. Environment variables (prefix ASSISTED_)
//  3. Config file (assisted.yaml in ., $HOME/.config/assisted/ or /etc/assisted/)
//  4. Compiled defaults
package config

// Viper keys for the assisted installer API.
const (
	keyAPIEndpoint            = "api.endpoint"
	keyAPIValidateCertificate = "api.validate_certificate"
	keyAPIMaxRetries          = "api.max_retries"
	keyAPITimeout             = "api.timeout"
)

// Viper keys for the SSO token endpoint.
const (
	keySSOTokenURL  = "sso.token_url"
	keySSOIssuerURL = "sso.issuer_url"
	keySSOClientID  = "sso.client_id"
)

// Viper keys for logging and metrics.
const (
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
	keyLogSyslog       = "log.syslog"
	keyMetricsTextfile = "metrics.textfile"
)
