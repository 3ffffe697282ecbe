package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultFolder is the manifest folder used when none is given.
const DefaultFolder = "manifests"

// ManifestUpload is the transient request built from a single module
// invocation. It is executed once and discarded.
type ManifestUpload struct {
	Endpoint            string
	ValidateCertificate bool
	ClusterID           string
	OfflineToken        OfflineToken
	FileName            string
	Content             string
	Folder              string
}

// Validate checks the fields the remote service cannot do without.
// The cluster identifier is opaque and only checked for presence.
func (m *ManifestUpload) Validate() error {
	switch {
	case m.Endpoint == "":
		return &ErrInvalidInput{Field: "ai_api_endpoint", Message: "must not be empty"}
	case m.ClusterID == "":
		return &ErrInvalidInput{Field: "cluster_id", Message: "must not be empty"}
	case m.FileName == "":
		return &ErrInvalidInput{Field: "file_name", Message: "must not be empty"}
	}
	if v, ok := m.OfflineToken.Get(); ok && v == "" {
		return &ErrInvalidInput{Field: "offline_token", Message: "must not be empty"}
	}
	if m.Folder == "" {
		m.Folder = DefaultFolder
	}
	return nil
}

// UploadResult is what a successful upload hands back to the caller.
type UploadResult struct {
	Changed bool
	// AccessToken is set only when a token exchange took place.
	AccessToken string
	// Raw is the unmodified upload response body.
	Raw []byte
}

// TokenIssuer exchanges an offline token for a short-lived access token.
type TokenIssuer interface {
	AccessToken(ctx context.Context, offlineToken string) (string, error)
}

// ManifestUploader posts a manifest to the assisted installer. An empty
// token means no Authorization header is sent.
type ManifestUploader interface {
	UploadManifest(ctx context.Context, req *ManifestUpload, token string) ([]byte, error)
}

// Recorder receives per-operation outcomes. A nil Recorder is allowed.
type Recorder interface {
	Record(ctx context.Context, operation string, err error, elapsed time.Duration)
}

const (
	OperationTokenExchange  = "token_exchange"
	OperationManifestUpload = "manifest_upload"
)

// ManifestUseCase runs the token exchange and the upload in sequence.
type ManifestUseCase struct {
	issuer   TokenIssuer
	uploader ManifestUploader
	recorder Recorder
	log      *slog.Logger
}

func NewManifestUseCase(issuer TokenIssuer, uploader ManifestUploader, recorder Recorder, log *slog.Logger) *ManifestUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &ManifestUseCase{
		issuer:   issuer,
		uploader: uploader,
		recorder: recorder,
		log:      log.With("component", "manifest"),
	}
}

// Upload exchanges the offline token when one is present and then posts
// the manifest. Any failure is terminal; nothing is retried here.
func (uc *ManifestUseCase) Upload(ctx context.Context, req *ManifestUpload) (*UploadResult, error) {
	if req == nil {
		return nil, errors.New("manifest upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &UploadResult{}

	var token string
	if offline, ok := req.OfflineToken.Get(); ok {
		start := time.Now()
		t, err := uc.issuer.AccessToken(ctx, offline)
		uc.record(ctx, OperationTokenExchange, err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("get access token: %w", err)
		}
		token = t
		result.AccessToken = t
		uc.log.Debug("access token obtained")
	}

	uc.log.Debug("uploading manifest",
		"cluster_id", req.ClusterID,
		"file_name", req.FileName,
		"folder", req.Folder,
		"content_length", len(req.Content),
		"authorized", token != "",
	)

	start := time.Now()
	raw, err := uc.uploader.UploadManifest(ctx, req, token)
	uc.record(ctx, OperationManifestUpload, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("upload manifest: %w", err)
	}

	uc.log.Debug("manifest uploaded", "response", string(raw))

	result.Changed = true
	result.Raw = raw
	return result, nil
}

func (uc *ManifestUseCase) record(ctx context.Context, op string, err error, elapsed time.Duration) {
	if uc.recorder == nil {
		return
	}
	uc.recorder.Record(ctx, op, err, elapsed)
}
