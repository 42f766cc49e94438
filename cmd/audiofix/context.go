package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Jacoboon/GameWatcher/internal/config"
	"github.com/Jacoboon/GameWatcher/internal/fault"
	"github.com/Jacoboon/GameWatcher/internal/logging"
	"github.com/Jacoboon/GameWatcher/internal/reporoot"
)

type globalFlags struct {
	configPath string
	root       string
	catalog    string
	voices     string
	logLevel   string
	logFormat  string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// repoRoot returns --root when given, otherwise the nearest marked ancestor of
// the working directory.
func (c *commandContext) repoRoot() (string, error) {
	if root := strings.TrimSpace(c.flags.root); root != "" {
		expanded, err := config.ExpandPath(root)
		if err != nil {
			return "", fault.Wrap(fault.ErrConfiguration, "cli", "resolve --root", root, err)
		}
		return expanded, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fault.Wrap(fault.ErrConfiguration, "cli", "working directory", "", err)
	}
	root, err := reporoot.Find(wd)
	if err != nil {
		return "", fault.Wrap(fault.ErrNotFound, "cli", "locate repository root", "run inside the repository or pass --root", err)
	}
	return root, nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		root, err := c.repoRoot()
		if err != nil {
			c.configErr = err
			return
		}
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath), root)
		if err != nil {
			c.configErr = fault.Wrap(fault.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if err := c.applyFlags(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config, c.configPath, c.configSeen = cfg, path, exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlags(cfg *config.Config) error {
	var err error
	if v := strings.TrimSpace(c.flags.catalog); v != "" {
		if cfg.Paths.Catalog, err = config.ExpandPath(v); err != nil {
			return fmt.Errorf("resolve --catalog: %w", err)
		}
	}
	if v := strings.TrimSpace(c.flags.voices); v != "" {
		if cfg.Paths.Voices, err = config.ExpandPath(v); err != nil {
			return fmt.Errorf("resolve --voices: %w", err)
		}
	}
	if v := strings.TrimSpace(c.flags.logLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(c.flags.logFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return fault.Wrap(fault.ErrConfiguration, "cli", "flags", "", err)
	}
	return nil
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
