package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/libros-go/internal/infra/confloader"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "cli.yaml")
}

// Load loads CLI configuration. Defaults are overlaid by the file at path
// (optional when path is the default), LIBROS_* environment variables and
// finally overrides, keyed by config path ("session.backend").
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	fileOpt := confloader.WithConfigFile(path)
	if path == "" {
		fileOpt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	cfg := Default()
	loader := confloader.NewLoader(fileOpt, confloader.WithOverrides(overrides))
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// A badger backend with the file default path would point at the token file.
	if cfg.Session.Backend == BackendBadger && cfg.Session.Path == DefaultTokenPath() {
		cfg.Session.Path = DefaultBadgerPath()
	}

	return cfg, nil
}

// Save saves CLI configuration to file with owner-only permissions.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
