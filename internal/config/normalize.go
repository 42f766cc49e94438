package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInventory()
	c.normalizeRepair()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("AUDIOFIX_CATALOG"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Catalog = value
	}
	if value, ok := os.LookupEnv("AUDIOFIX_VOICES_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Voices = value
	}
	if value, ok := os.LookupEnv("AUDIOFIX_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.Catalog) == "" {
		c.Paths.Catalog = defaultCatalogPath
	}
	if strings.TrimSpace(c.Paths.Voices) == "" {
		c.Paths.Voices = defaultVoicesDir
	}
	var err error
	if c.Paths.Catalog, err = c.ResolvePath(c.Paths.Catalog); err != nil {
		return fmt.Errorf("paths.catalog: %w", err)
	}
	if c.Paths.Voices, err = c.ResolvePath(c.Paths.Voices); err != nil {
		return fmt.Errorf("paths.voices: %w", err)
	}
	return nil
}

func (c *Config) normalizeInventory() {
	ext := strings.ToLower(strings.TrimSpace(c.Inventory.Extension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Inventory.Extension = ext

	dirs := make([]string, 0, len(c.Inventory.ExcludedDirs))
	seen := make(map[string]struct{}, len(c.Inventory.ExcludedDirs))
	for _, dir := range c.Inventory.ExcludedDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	c.Inventory.ExcludedDirs = dirs

	if c.Inventory.ScanWorkers == 0 {
		c.Inventory.ScanWorkers = defaultScanWorkers
	}
}

func (c *Config) normalizeRepair() {
	c.Repair.PathStyle = strings.ToLower(strings.TrimSpace(c.Repair.PathStyle))
	if c.Repair.PathStyle == "" {
		c.Repair.PathStyle = defaultPathStyle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
