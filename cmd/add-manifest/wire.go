//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/spf13/cobra"

	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/cmd"
	"github.com/rhpds/assisted-add-manifest/internal/config"
	"github.com/rhpds/assisted-add-manifest/internal/providers"
)

func wireCmd() (*cobra.Command, func(), error) {
	panic(wire.Build(
		newCmd,
		config.ProviderSet,
	))
}

func wireModule(*config.Config) (*app.ManifestModule, func(), error) {
	panic(wire.Build(
		provideMetrics,
		app.ProviderSet,
		providers.ProviderSet,
		cmd.ProviderSet,
	))
}
