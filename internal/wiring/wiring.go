// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/flo/internal/adapters/config"
	_ "go.trai.ch/flo/internal/adapters/fs"
	_ "go.trai.ch/flo/internal/adapters/logger"
	_ "go.trai.ch/flo/internal/adapters/shell"
	_ "go.trai.ch/flo/internal/adapters/state"
	_ "go.trai.ch/flo/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/flo/internal/app"
	_ "go.trai.ch/flo/internal/engine/scheduler"
	_ "go.trai.ch/flo/internal/engine/stale"
)
