package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Inventory.Extension == "" || c.Inventory.Extension == "." {
		return errors.New("inventory.extension must be set")
	}
	if strings.ContainsAny(c.Inventory.Extension, `/\*?[`) {
		return fmt.Errorf("inventory.extension: invalid value %q", c.Inventory.Extension)
	}
	for _, dir := range c.Inventory.ExcludedDirs {
		if dir != filepath.Base(dir) {
			return fmt.Errorf("inventory.excluded_dirs: %q must be a directory name, not a path", dir)
		}
	}
	if c.Inventory.ScanWorkers < 1 {
		return fmt.Errorf("inventory.scan_workers must be positive, got %d", c.Inventory.ScanWorkers)
	}
	if strings.TrimSpace(c.Repair.ReadyStatus) == "" {
		return errors.New("repair.ready_status must be set")
	}
	if strings.TrimSpace(c.Repair.ReadyColor) == "" {
		return errors.New("repair.ready_color must be set")
	}
	switch c.Repair.PathStyle {
	case PathStyleAbsolute, PathStyleRelative:
	default:
		return fmt.Errorf("repair.path_style: unsupported value %q (use %q or %q)", c.Repair.PathStyle, PathStyleAbsolute, PathStyleRelative)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Repair.PathStyle == PathStyleRelative && c.Root == "" {
		return errors.New("repair.path_style = \"relative\" requires a repository root")
	}
	return nil
}
