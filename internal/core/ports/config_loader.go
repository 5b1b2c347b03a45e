// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/flo/internal/core/domain"

// ConfigLoader defines the interface for loading the resolved task list.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns the dependency graph built from the resolved task list.
	Load(cwd string) (*domain.Graph, error)
}
