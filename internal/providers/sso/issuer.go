// Package sso implements core.TokenIssuer by exchanging an offline
// token for an access token through the OAuth2 refresh-token grant.
package sso

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/rhpds/assisted-add-manifest/internal/core"
)

const (
	// DefaultTokenURL is the Red Hat SSO token endpoint used for
	// console.redhat.com offline tokens.
	DefaultTokenURL = "https://sso.redhat.com/auth/realms/redhat-external/protocol/openid-connect/token"
	// DefaultClientID is the public client offline tokens are issued to.
	DefaultClientID = "cloud-services"
)

// Config selects the token endpoint. TokenURL wins over IssuerURL;
// IssuerURL is resolved through OIDC discovery.
type Config struct {
	TokenURL  string
	IssuerURL string
	ClientID  string
}

// Issuer exchanges offline tokens. Nothing is cached between calls.
type Issuer struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger

	once       sync.Once
	endpoint   oauth2.Endpoint
	resolveErr error
}

// NewIssuer returns an Issuer that sends its requests through client.
func NewIssuer(cfg Config, client *http.Client, log *slog.Logger) *Issuer {
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if cfg.TokenURL == "" && cfg.IssuerURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Issuer{
		cfg:    cfg,
		client: client,
		log:    log.With("component", "sso"),
	}
}

var _ core.TokenIssuer = (*Issuer)(nil)

// AccessToken performs a single refresh-token grant and returns the
// access token from the response.
func (i *Issuer) AccessToken(ctx context.Context, offlineToken string) (string, error) {
	if offlineToken == "" {
		return "", &core.ErrInvalidInput{Field: "offline_token", Message: "must not be empty"}
	}

	endpoint, err := i.resolveEndpoint(ctx)
	if err != nil {
		return "", err
	}

	conf := &oauth2.Config{
		ClientID: i.cfg.ClientID,
		Endpoint: endpoint,
	}

	// oauth2 accepts any 2xx; the token endpoint must answer 200.
	rec := &recorder{next: i.client.Transport}
	client := *i.client
	client.Transport = rec
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &client)

	i.log.Debug("exchanging offline token", "token_url", endpoint.TokenURL, "client_id", i.cfg.ClientID)

	tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: offlineToken}).Token()
	switch {
	case err != nil:
		return "", translate(err, rec)
	case rec.status != http.StatusOK, tok.AccessToken == "":
		return "", authError(rec.status, rec.body)
	}
	return tok.AccessToken, nil
}

func (i *Issuer) resolveEndpoint(ctx context.Context) (oauth2.Endpoint, error) {
	if i.cfg.TokenURL != "" {
		return oauth2.Endpoint{TokenURL: i.cfg.TokenURL, AuthStyle: oauth2.AuthStyleInParams}, nil
	}

	i.once.Do(func() {
		provider, err := oidc.NewProvider(oidc.ClientContext(ctx, i.client), i.cfg.IssuerURL)
		if err != nil {
			i.resolveErr = &core.ErrTransport{Op: "discover token endpoint", Err: err}
			return
		}
		i.endpoint = provider.Endpoint()
		i.endpoint.AuthStyle = oauth2.AuthStyleInParams
		i.log.Debug("discovered token endpoint", "issuer", i.cfg.IssuerURL, "token_url", i.endpoint.TokenURL)
	})
	return i.endpoint, i.resolveErr
}

// translate maps oauth2 failures onto domain errors. Responses the
// token endpoint produced become ErrAuthentication; anything else is a
// transport failure.
func translate(err error, rec *recorder) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		return authError(status, re.Body)
	}
	if rec.status != 0 {
		// A response arrived but carried no usable token.
		return authError(rec.status, rec.body)
	}
	return &core.ErrTransport{Op: "token exchange", Err: err}
}

func authError(status int, body []byte) error {
	authErr := &core.ErrAuthentication{StatusCode: status, Body: body}
	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		authErr.Fields = fields
	}
	return authErr
}

// maxTokenResponse matches the limit oauth2 applies when reading the
// token response.
const maxTokenResponse = 1 << 20

// recorder keeps the status and body of the last response so they can
// be judged after oauth2 has parsed the token.
type recorder struct {
	next   http.RoundTripper
	status int
	body   []byte
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	next := r.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponse))
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	r.status = resp.StatusCode
	r.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
