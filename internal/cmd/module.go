package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rhpds/assisted-add-manifest/internal/ansible"
	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/config"
	"github.com/rhpds/assisted-add-manifest/internal/core"
)

// ErrModuleFailed is returned after a failure document has been
// written. The caller only has to set the exit status.
var ErrModuleFailed = errors.New("module failed")

// ModuleInjector builds a module together with its cleanup, after
// flags have been parsed.
type ModuleInjector func() (*app.ManifestModule, func(), error)

// NewModuleCommand returns the root command. Ansible invokes it with
// the path of the JSON argument file; "-" or no argument reads stdin.
func NewModuleCommand(conf *config.Config, version core.Version, newModule ModuleInjector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "add-manifest [ARGS_FILE]",
		Short:         "Ansible module that uploads a manifest to an assisted installer cluster",
		Example:       "add-manifest /tmp/ansible-args.json\necho '{\"cluster_id\":\"abc\",\"offline_token\":\"None\",\"file_name\":\"x.yaml\",\"content\":\"a: b\"}' | add-manifest -",
		Version:       string(version),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := readArgs(cmd.InOrStdin(), args)
			if err != nil {
				return fail(out, "failed to read module arguments: "+err.Error())
			}

			module, cleanup, err := newModule()
			if err != nil {
				return fail(out, "failed to initialize module: "+err.Error())
			}
			defer cleanup()

			result := module.Run(cmd.Context(), data)
			if err := ansible.Write(out, result); err != nil {
				return err
			}
			if result.Failed() {
				return ErrModuleFailed
			}
			return nil
		},
	}

	if err := conf.BindFlags(cmd.PersistentFlags(), config.Options); err != nil {
		return nil, err
	}

	return cmd, nil
}

func readArgs(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

func fail(w io.Writer, msg string) error {
	if err := ansible.Write(w, ansible.Fail(msg, nil)); err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return ErrModuleFailed
}
