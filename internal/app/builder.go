package app

import (
	"go.trai.ch/flo/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/flo/internal/core/ports"
)

// Components bundles everything the CLI entry point needs.
type Components struct {
	App          *App
	Logger       ports.Logger
	configLoader *config.Loader
}

// NewComponents creates a Components bundle from its parts.
func NewComponents(a *App, log ports.Logger, loader *config.Loader) *Components {
	return &Components{
		App:          a,
		Logger:       log,
		configLoader: loader,
	}
}

// SetConfigFile points the loader at an alternate task file for this
// invocation.
func (c *Components) SetConfigFile(name string) {
	c.configLoader.SetFilename(name)
}
