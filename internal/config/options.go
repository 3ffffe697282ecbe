package config

import (
	"strings"
	"time"

	"github.com/rhpds/assisted-add-manifest/internal/providers/sso"
)

// Option describes a single configuration entry: its viper key, the
// corresponding CLI flag name, the compiled default, and a
// human-readable description shown in --help output.
type Option struct {
	Key         string
	Flag        string
	Default     any
	Description string
}

// Options defines every configuration entry. Each entry is registered
// as a viper default and a CLI flag.
var Options = []Option{
	{Key: keyAPIEndpoint, Flag: toFlag(keyAPIEndpoint), Default: "https://api.openshift.com", Description: "Assisted installer API endpoint"},
	{Key: keyAPIValidateCertificate, Flag: toFlag(keyAPIValidateCertificate), Default: true, Description: "Validate the API TLS certificate"},
	{Key: keyAPIMaxRetries, Flag: toFlag(keyAPIMaxRetries), Default: 5, Description: "Transport-level retries for https requests"},
	{Key: keyAPITimeout, Flag: toFlag(keyAPITimeout), Default: time.Duration(0), Description: "Per-request timeout, 0 for none"},
	{Key: keySSOTokenURL, Flag: toFlag(keySSOTokenURL), Default: sso.DefaultTokenURL, Description: "OAuth2 token endpoint for offline tokens"},
	{Key: keySSOIssuerURL, Flag: toFlag(keySSOIssuerURL), Default: "", Description: "OIDC issuer used to discover the token endpoint when sso token url is empty"},
	{Key: keySSOClientID, Flag: toFlag(keySSOClientID), Default: sso.DefaultClientID, Description: "OAuth2 client id"},
	{Key: keyLogLevel, Flag: toFlag(keyLogLevel), Default: "info", Description: "Log level (debug, info, warn, error)"},
	{Key: keyLogFormat, Flag: toFlag(keyLogFormat), Default: "text", Description: "Log format (text, json)"},
	{Key: keyLogSyslog, Flag: toFlag(keyLogSyslog), Default: false, Description: "Send logs to the local syslog instead of stderr"},
	{Key: keyMetricsTextfile, Flag: toFlag(keyMetricsTextfile), Default: "", Description: "Write Prometheus metrics to this file on exit"},
}

// toFlag converts a viper key like "api.validate_certificate" into a
// CLI flag like "api-validate-certificate" by lower-casing and
// replacing dots and underscores with hyphens.
func toFlag(key string) string {
	flag := strings.ToLower(key)
	flag = strings.ReplaceAll(flag, ".", "-")
	flag = strings.ReplaceAll(flag, "_", "-")
	return flag
}
