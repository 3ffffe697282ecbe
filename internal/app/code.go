package app

import (
	"errors"

	"github.com/rhpds/assisted-add-manifest/internal/ansible"
	"github.com/rhpds/assisted-add-manifest/internal/core"
)

// Failure messages shown to the playbook author.
const (
	msgAccessToken = "Error getting access token "
	msgRequest     = "Request failed: "
	msgTransport   = "Transport error: "
)

// errorToResult converts a domain error into an Ansible failure
// document. Whatever JSON the remote service returned is merged in so
// the playbook can inspect it.
func errorToResult(err error) ansible.Result {
	var (
		argErr       *ansible.ArgumentError
		inputErr     *core.ErrInvalidInput
		authErr      *core.ErrAuthentication
		uploadErr    *core.ErrUpload
		transportErr *core.ErrTransport
	)

	switch {
	case errors.As(err, &argErr):
		return ansible.Fail(argErr.Msg, nil)

	case errors.As(err, &inputErr):
		return ansible.Fail(inputErr.Error(), nil)

	case errors.As(err, &authErr):
		r := ansible.Fail(msgAccessToken, authErr.Fields)
		if authErr.StatusCode != 0 {
			r["status_code"] = authErr.StatusCode
		}
		if authErr.Fields == nil {
			r["body"] = string(authErr.Body)
		}
		return r

	case errors.As(err, &uploadErr):
		r := ansible.Fail(msgRequest+string(uploadErr.Body), uploadErr.Fields)
		r["status_code"] = uploadErr.StatusCode
		return r

	case errors.As(err, &transportErr):
		return ansible.Fail(msgTransport+transportErr.Error(), nil)

	default:
		return ansible.Fail(err.Error(), nil)
	}
}
