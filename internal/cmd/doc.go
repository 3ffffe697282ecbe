package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/config"
	"github.com/rhpds/assisted-add-manifest/internal/providers"
)

// NewDocCommand prints the module documentation as YAML. Defaults
// reflect the current configuration.
func NewDocCommand(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Print the module DOCUMENTATION, EXAMPLES and RETURN blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module := app.NewManifestModule(providers.NewDefaults(conf), nil, nil)
			out, err := module.Documentation().Render(module.ArgumentSpec())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
