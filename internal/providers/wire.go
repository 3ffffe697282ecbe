// Package providers aggregates the infrastructure adapters (sso,
// assisted, telemetry) into a single Wire provider set.
package providers

import (
	"github.com/google/wire"

	"github.com/rhpds/assisted-add-manifest/internal/core"
	"github.com/rhpds/assisted-add-manifest/internal/telemetry"
)

// ProviderSet is the Wire provider set for all external adapters.
var ProviderSet = wire.NewSet(
	NewUseCaseFactory,
	NewDefaults,
	wire.Bind(new(core.Recorder), new(*telemetry.Metrics)),
)
