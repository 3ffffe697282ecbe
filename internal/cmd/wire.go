// Package cmd defines the Cobra commands (module execution, doc) and
// the logger every module run is wired with.
package cmd

import "github.com/google/wire"

// ProviderSet is the Wire provider set for the CLI layer.
var ProviderSet = wire.NewSet(
	NewLogger,
)
