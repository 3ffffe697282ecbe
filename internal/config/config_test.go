package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestToFlag(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		keyAPIEndpoint:            "api-endpoint",
		keyAPIValidateCertificate: "api-validate-certificate",
		keySSOTokenURL:            "sso-token-url",
		keyMetricsTextfile:        "metrics-textfile",
	}
	for key, want := range cases {
		if got := toFlag(key); got != want {
			t.Fatalf("toFlag(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.APIEndpoint(); got != "https://api.openshift.com" {
		t.Fatalf("APIEndpoint() = %q", got)
	}
	if !c.APIValidateCertificate() {
		t.Fatal("APIValidateCertificate() = false, want true")
	}
	if got := c.APIMaxRetries(); got != 5 {
		t.Fatalf("APIMaxRetries() = %d, want 5", got)
	}
	if got := c.APITimeout(); got != 0 {
		t.Fatalf("APITimeout() = %s, want 0", got)
	}
	if got := c.SSOClientID(); got != "cloud-services" {
		t.Fatalf("SSOClientID() = %q", got)
	}
	if got := c.LogLevel(); got != "info" {
		t.Fatalf("LogLevel() = %q", got)
	}
	if c.LogSyslog() {
		t.Fatal("LogSyslog() = true, want stderr by default")
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ASSISTED_API_ENDPOINT", "http://10.0.0.1:8090")
	t.Setenv("ASSISTED_API_VALIDATE_CERTIFICATE", "false")
	t.Setenv("ASSISTED_SSO_TOKEN_URL", "")
	t.Setenv("ASSISTED_LOG_LEVEL", "debug")

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.APIEndpoint(); got != "http://10.0.0.1:8090" {
		t.Fatalf("APIEndpoint() = %q", got)
	}
	if c.APIValidateCertificate() {
		t.Fatal("APIValidateCertificate() = true, want false")
	}
	if got := c.SSOTokenURL(); got != "" {
		t.Fatalf("SSOTokenURL() = %q, want empty", got)
	}
	if got := c.LogLevel(); got != "debug" {
		t.Fatalf("LogLevel() = %q", got)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "assisted")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "api:\n  endpoint: https://assisted.internal\n  max_retries: 2\nlog:\n  format: json\n"
	if err := os.WriteFile(filepath.Join(dir, "assisted.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.APIEndpoint(); got != "https://assisted.internal" {
		t.Fatalf("APIEndpoint() = %q", got)
	}
	if got := c.APIMaxRetries(); got != 2 {
		t.Fatalf("APIMaxRetries() = %d", got)
	}
	if got := c.LogFormat(); got != "json" {
		t.Fatalf("LogFormat() = %q", got)
	}
	if c.ConfigFileUsed() == "" {
		t.Fatal("ConfigFileUsed() is empty")
	}
}

func TestBindFlags_FlagWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ASSISTED_API_MAX_RETRIES", "3")

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := c.BindFlags(fs, Options); err != nil {
		t.Fatalf("BindFlags() error = %v", err)
	}
	if err := fs.Parse([]string{"--api-max-retries=1", "--api-timeout=30s"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := c.APIMaxRetries(); got != 1 {
		t.Fatalf("APIMaxRetries() = %d, want 1", got)
	}
	if got := c.APITimeout(); got != 30*time.Second {
		t.Fatalf("APITimeout() = %s", got)
	}
}

func TestBindFlags_UnsupportedType(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err = c.BindFlags(fs, []Option{{Key: "x.y", Flag: "x-y", Default: 1.5}})
	if err == nil {
		t.Fatal("expected error for float default")
	}
}
