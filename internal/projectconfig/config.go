// Package projectconfig provides the ProjectConfig struct and loader for
// .taskpilot.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultServerPort = 8080

	DefaultStorageDriver = "sqlite"
	DefaultStoragePath   = ".taskpilot/tasks.db"

	DefaultEngine         = "copilot-sdk"
	DefaultModel          = "gpt-4o-mini"
	DefaultTimeoutSeconds = 60
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// StorageConfig holds task persistence settings.
type StorageConfig struct {
	Driver string `yaml:"driver,omitempty"` // "sqlite" or "memory"
	Path   string `yaml:"path,omitempty"`
}

// GenerationConfig holds text-generation engine settings.
type GenerationConfig struct {
	Engine         string `yaml:"engine,omitempty"` // "copilot-sdk" or "mock"
	Model          string `yaml:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .taskpilot.yaml.
type ProjectConfig struct {
	Server     ServerConfig     `yaml:"server,omitempty"`
	Storage    StorageConfig    `yaml:"storage,omitempty"`
	Generation GenerationConfig `yaml:"generation,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Storage: StorageConfig{
			Driver: DefaultStorageDriver,
			Path:   DefaultStoragePath,
		},
		Generation: GenerationConfig{
			Engine:         DefaultEngine,
			Model:          DefaultModel,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// Load finds .taskpilot.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .taskpilot.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .taskpilot.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .taskpilot.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".taskpilot.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}

	// Storage
	if src.Storage.Driver != "" {
		dst.Storage.Driver = src.Storage.Driver
	}
	if src.Storage.Path != "" {
		dst.Storage.Path = src.Storage.Path
	}

	// Generation
	if src.Generation.Engine != "" {
		dst.Generation.Engine = src.Generation.Engine
	}
	if src.Generation.Model != "" {
		dst.Generation.Model = src.Generation.Model
	}
	if src.Generation.TimeoutSeconds != 0 {
		dst.Generation.TimeoutSeconds = src.Generation.TimeoutSeconds
	}
}
