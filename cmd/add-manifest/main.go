// Package main is the entry point for the add-manifest binary Ansible
// module. Ansible copies the binary to the target host and runs it
// with the path of a JSON argument file; the result document is
// written to stdout.
//
// Dependencies are assembled via Google Wire; see wire.go.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhpds/assisted-add-manifest/internal/app"
	"github.com/rhpds/assisted-add-manifest/internal/cmd"
	"github.com/rhpds/assisted-add-manifest/internal/config"
	"github.com/rhpds/assisted-add-manifest/internal/core"
	"github.com/rhpds/assisted-add-manifest/internal/telemetry"
)

// version is injected at build time via -ldflags
// (e.g. -ldflags "-X main.version=v1.2.3").
var version = "devel"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		// The failure document is already on stdout.
		if errors.Is(err, cmd.ErrModuleFailed) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires all dependencies and executes the root Cobra command.
func run(ctx context.Context) error {
	rootCmd, cleanup, err := wireCmd()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	return rootCmd.ExecuteContext(ctx)
}

// newCmd is a Wire provider that constructs the root command and
// registers the doc subcommand. The module itself is wired lazily so
// that flags are parsed before the logger and clients are built.
func newCmd(conf *config.Config) (*cobra.Command, error) {
	c, err := cmd.NewModuleCommand(conf, core.Version(version), func() (*app.ManifestModule, func(), error) {
		return wireModule(conf)
	})
	if err != nil {
		return nil, err
	}

	c.AddCommand(cmd.NewDocCommand(conf))

	return c, nil
}

// provideMetrics is a Wire provider for the per-run metrics. Its
// cleanup dumps the registry to the configured textfile, if any, and
// shuts the meter provider down.
func provideMetrics(conf *config.Config, log *slog.Logger) (*telemetry.Metrics, func(), error) {
	m, err := telemetry.New()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if path := conf.MetricsTextfile(); path != "" {
			if err := m.WriteTextfile(path); err != nil {
				log.Warn("failed to write metrics", "path", path, "error", err)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Shutdown(ctx); err != nil {
			log.Warn("failed to shut down meter provider", "error", err)
		}
	}

	return m, cleanup, nil
}
