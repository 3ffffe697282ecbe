// Package assisted implements core.ManifestUploader against the
// assisted installer REST API.
package assisted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rhpds/assisted-add-manifest/internal/core"
)

// RegisterClusterPath is the collection path clusters live under.
const RegisterClusterPath = "api/assisted-install/v2/clusters"

// errorField marks an error document in a response body.
const errorField = "code"

// Manifest is the upload payload. Values are sent verbatim.
type Manifest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Folder   string `json:"folder"`
}

// Response keeps the raw transport body apart from its decoded form.
type Response struct {
	StatusCode int
	Raw        []byte
	// Body is the decoded JSON object, or nil when Raw is not one.
	Body map[string]any
}

// Failed reports whether the decoded body carries an error indicator.
func (r *Response) Failed() bool {
	if r.Body == nil {
		return false
	}
	_, ok := r.Body[errorField]
	return ok
}

// Client talks to one assisted installer endpoint.
type Client struct {
	client *http.Client
	log    *slog.Logger
}

// NewClient returns a Client sending requests through client.
func NewClient(client *http.Client, log *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		client: client,
		log:    log.With("component", "assisted"),
	}
}

var _ core.ManifestUploader = (*Client)(nil)

// UploadManifest posts the manifest and returns the raw response body.
// A body with an error indicator becomes core.ErrUpload.
func (c *Client) UploadManifest(ctx context.Context, req *core.ManifestUpload, token string) ([]byte, error) {
	resp, err := c.PostManifest(ctx, req.Endpoint, req.ClusterID, token, Manifest{
		FileName: req.FileName,
		Content:  req.Content,
		Folder:   req.Folder,
	})
	if err != nil {
		return nil, err
	}
	if resp.Failed() {
		return nil, &core.ErrUpload{
			StatusCode: resp.StatusCode,
			Body:       resp.Raw,
			Fields:     resp.Body,
		}
	}
	return resp.Raw, nil
}

// PostManifest issues the POST and decodes the response without
// judging it.
func (c *Client) PostManifest(ctx context.Context, endpoint, clusterID, token string, m Manifest) (*Response, error) {
	u, err := ManifestsURL(endpoint, clusterID)
	if err != nil {
		return nil, err
	}

	payload, err := encode(m)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("posting manifest", "url", u, "folder", m.Folder, "file_name", m.FileName)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &core.ErrTransport{Op: "upload manifest", Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &core.ErrTransport{Op: "read upload response", Err: err}
	}

	c.log.Debug("upload response", "status_code", httpResp.StatusCode, "bytes", len(raw))

	resp := &Response{StatusCode: httpResp.StatusCode, Raw: raw}
	var body map[string]any
	if json.Unmarshal(raw, &body) == nil {
		resp.Body = body
	}
	return resp, nil
}

// ManifestsURL builds {endpoint}/{RegisterClusterPath}/{clusterID}/manifests.
// The cluster ID is opaque and not validated.
func ManifestsURL(endpoint, clusterID string) (string, error) {
	base, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return "", &core.ErrInvalidInput{Field: "ai_api_endpoint", Message: err.Error()}
	}
	if base.Scheme == "" || base.Host == "" {
		return "", &core.ErrInvalidInput{Field: "ai_api_endpoint", Message: fmt.Sprintf("%q is not an absolute URL", endpoint)}
	}
	return base.JoinPath(RegisterClusterPath, clusterID, "manifests").String(), nil
}

// encode marshals without HTML escaping so content reaches the service
// byte for byte.
func encode(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
