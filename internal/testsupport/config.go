package testsupport

import (
	"github.com/Jacoboon/GameWatcher/internal/config"
)

// ConfigOption customizes a generated test configuration.
type ConfigOption func(*config.Config)

// WithPathStyle switches between absolute and root-relative assigned paths.
func WithPathStyle(style string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Repair.PathStyle = style
	}
}

// WithExcludedDirs replaces the excluded speaker directory names.
func WithExcludedDirs(names ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Inventory.ExcludedDirs = names
	}
}

// WithReadyStatus overrides the presentation values written on repair.
func WithReadyStatus(status, color string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Repair.ReadyStatus = status
		cfg.Repair.ReadyColor = color
	}
}
