package providers

import (
	"log/slog"

	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/config"
	"github.com/rhpds/assisted-add-manifest/internal/core"
	"github.com/rhpds/assisted-add-manifest/internal/providers/assisted"
	"github.com/rhpds/assisted-add-manifest/internal/providers/sso"
	transporthttp "github.com/rhpds/assisted-add-manifest/internal/transport/http"
)

// NewUseCaseFactory returns a factory that wires the sso issuer and the
// assisted client onto one shared HTTP client per invocation, so the
// token exchange and the upload reuse connections.
func NewUseCaseFactory(conf *config.Config, recorder core.Recorder, log *slog.Logger) app.UseCaseFactory {
	return func(validateCertificate bool) *core.ManifestUseCase {
		client := transporthttp.NewClient(
			transporthttp.WithValidateCertificate(validateCertificate),
			transporthttp.WithMaxRetries(conf.APIMaxRetries()),
			transporthttp.WithTimeout(conf.APITimeout()),
			transporthttp.WithClientLogger(log.With("component", "http-client")),
		)

		issuer := sso.NewIssuer(sso.Config{
			TokenURL:  conf.SSOTokenURL(),
			IssuerURL: conf.SSOIssuerURL(),
			ClientID:  conf.SSOClientID(),
		}, client, log)

		return core.NewManifestUseCase(issuer, assisted.NewClient(client, log), recorder, log)
	}
}

// NewDefaults exposes the shared module defaults from configuration.
func NewDefaults(conf *config.Config) app.Defaults {
	return app.Defaults{
		Endpoint:            conf.APIEndpoint(),
		ValidateCertificate: conf.APIValidateCertificate(),
	}
}
