package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// FileName is the configuration file looked up at the repository root.
const FileName = "audiofix.toml"

// Paths locates the catalog and the voices tree. Relative values are
// resolved against the repository root.
type Paths struct {
	Catalog string `toml:"catalog"`
	Voices  string `toml:"voices"`
}

// Inventory controls how speaker directories are scanned.
type Inventory struct {
	Extension    string   `toml:"extension"`
	ExcludedDirs []string `toml:"excluded_dirs"`
	ScanWorkers  int      `toml:"scan_workers"`
}

// Repair controls the values written onto repaired entries.
type Repair struct {
	ReadyStatus string `toml:"ready_status"`
	ReadyColor  string `toml:"ready_color"`
	// PathStyle is "absolute" or "relative" (to the repository root).
	PathStyle string `toml:"path_style"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for audiofix.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Inventory Inventory `toml:"inventory"`
	Repair    Repair    `toml:"repair"`
	Logging   Logging   `toml:"logging"`

	// Root is the repository root the paths were resolved against.
	Root string `toml:"-"`
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gamewatcher/" + FileName)
}

// Load locates, parses, and validates a configuration file for the repository
// rooted at root. It returns the config, the path that was considered, and
// whether that file existed.
func Load(path, root string) (*Config, string, bool, error) {
	cfg := Default()

	root, err := expandPath(root)
	if err != nil {
		return nil, "", false, fmt.Errorf("resolve repository root: %w", err)
	}
	cfg.Root = root

	if err := loadDotEnv(root); err != nil {
		return nil, "", false, err
	}

	resolvedPath, exists, err := resolveConfigPath(path, root)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(root string) error {
	if root == "" {
		return nil
	}
	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("load %s: %w", envPath, err)
	}
	return nil
}

func resolveConfigPath(path, root string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	candidates := []string{defaultPath}
	if root != "" {
		candidates = []string{filepath.Join(root, FileName), defaultPath}
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

// ResolvePath expands ~ and joins relative values onto the repository root.
func (c *Config) ResolvePath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !strings.HasPrefix(value, "~") && !filepath.IsAbs(value) && c.Root != "" {
		value = filepath.Join(c.Root, value)
	}
	return expandPath(value)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
