package app

import (
	"context"
	"log/slog"

	"github.com/rhpds/assisted-add-manifest/internal/ansible"
	"github.com/rhpds/assisted-add-manifest/internal/core"
)

// ModuleName is the name Ansible knows the module by.
const ModuleName = "add_manifest"

// legacyNoToken is the literal playbooks pass to skip the token
// exchange. It is turned into an absent token here and nowhere else.
const legacyNoToken = "None"

// Defaults are the shared values used when a playbook omits
// ai_api_endpoint or validate_certificate.
type Defaults struct {
	Endpoint            string
	ValidateCertificate bool
}

// UseCaseFactory builds a use case whose HTTP client honours the
// certificate setting of the current invocation.
type UseCaseFactory func(validateCertificate bool) *core.ManifestUseCase

// ManifestModule runs one add_manifest invocation end to end.
type ManifestModule struct {
	defaults   Defaults
	newUseCase UseCaseFactory
	log        *slog.Logger
}

func NewManifestModule(defaults Defaults, newUseCase UseCaseFactory, log *slog.Logger) *ManifestModule {
	if log == nil {
		log = slog.Default()
	}
	return &ManifestModule{
		defaults:   defaults,
		newUseCase: newUseCase,
		log:        log.With("module", ModuleName),
	}
}

// ArgumentSpec returns the parameters add_manifest accepts.
func (m *ManifestModule) ArgumentSpec() ansible.ArgumentSpec {
	return ansible.ArgumentSpec{
		{Name: "ai_api_endpoint", Type: ansible.TypeStr, Default: m.defaults.Endpoint, Description: "The AI Endpoint"},
		{Name: "validate_certificate", Type: ansible.TypeBool, Default: m.defaults.ValidateCertificate, Description: "validate the API certificate"},
		{Name: "cluster_id", Type: ansible.TypeStr, Required: true, Description: "ID of the cluster"},
		{Name: "offline_token", Type: ansible.TypeStr, Required: true, NoLog: true, Description: "Offline token from console.redhat.com, or None to skip authentication"},
		{Name: "file_name", Type: ansible.TypeStr, Required: true, Description: "The manifest name."},
		{Name: "content", Type: ansible.TypeStr, Required: true, Description: "The manifest content."},
		{Name: "folder", Type: ansible.TypeStr, Default: core.DefaultFolder, Description: "The folder for the manifest."},
	}
}

// Documentation returns the module's DOCUMENTATION, EXAMPLES and RETURN.
func (m *ManifestModule) Documentation() ansible.Documentation {
	return ansible.Documentation{
		Module:           ModuleName,
		ShortDescription: "Uploads a custom manifest to an assisted installer cluster.",
		Description:      "Adds a manifest file to the cluster's manifests or openshift folder before installation starts.",
		VersionAdded:     "1.0.0",
		Author:           []string{"Rabin (@rabin-io)"},
		Examples: `- name: Add custom manifest
  rhpds.assisted_installer.add_manifest:
    cluster_id: "{{ newcluster.result.id }}"
    offline_token: "{{ offline_token }}"
    file_name: "xyz.yaml"
    content: "{{ lookup('file', 'manifest.yaml') }}"
    folder: manifests
`,
		Returns: []ansible.ReturnValue{
			{Name: "result", Description: "Raw response body of the upload call", Type: "str", Returned: "success"},
			{Name: "access_token", Description: "Access token obtained from the offline token", Type: "str", Returned: "when offline_token is not None"},
		},
	}
}

// Run parses the argument file contents, performs the upload and
// returns the result document. It never returns an error: every
// failure is expressed as a failed result.
func (m *ManifestModule) Run(ctx context.Context, args []byte) ansible.Result {
	inv, err := ansible.Parse(ModuleName, args, m.ArgumentSpec())
	if err != nil {
		m.log.Error("invalid module arguments", "error", err)
		return errorToResult(err)
	}

	if inv.CheckMode {
		return ansible.Skip("remote module (" + ModuleName + ") does not support check mode").WithInvocation(inv)
	}

	req := uploadFromParams(inv.Params)
	uc := m.newUseCase(req.ValidateCertificate)

	res, err := uc.Upload(ctx, &req)
	if err != nil {
		m.log.Error("add manifest failed", "cluster_id", req.ClusterID, "error", err)
		return errorToResult(err).WithInvocation(inv)
	}

	m.log.Info("manifest added", "cluster_id", req.ClusterID, "file_name", req.FileName, "folder", req.Folder)

	r := ansible.NewResult()
	r["changed"] = res.Changed
	r["result"] = string(res.Raw)
	if res.AccessToken != "" {
		r["access_token"] = res.AccessToken
	}
	return r.WithInvocation(inv)
}

func uploadFromParams(p ansible.Params) core.ManifestUpload {
	token := core.NoOfflineToken()
	if v := p.String("offline_token"); v != legacyNoToken {
		token = core.NewOfflineToken(v)
	}
	return core.ManifestUpload{
		Endpoint:            p.String("ai_api_endpoint"),
		ValidateCertificate: p.Bool("validate_certificate"),
		ClusterID:           p.String("cluster_id"),
		OfflineToken:        token,
		FileName:            p.String("file_name"),
		Content:             p.String("content"),
		Folder:              p.String("folder"),
	}
}
