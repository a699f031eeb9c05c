package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Output controls where fixed archives land.
type Output struct {
	Dir    string `toml:"dir"`
	Suffix string `toml:"suffix"`
}

// Transform holds the knobs for the rename-and-relink pass.
type Transform struct {
	RewriteLinks    bool `toml:"rewrite_links"`
	RemoveTitle     bool `toml:"remove_title"`
	MoveIndexMD     bool `toml:"move_index_md"`
	StripCommonRoot bool `toml:"strip_common_root"`
	Workers         int  `toml:"workers"`
}

// Logging selects log level, format, and an optional log file directory.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Config centralizes every knob the CLI needs.
type Config struct {
	Output    Output    `toml:"output"`
	Transform Transform `toml:"transform"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the user-level configuration file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "exportfix", "config.toml"), nil
}

// Load reads the configuration at path, falling back to the default location
// and then to repository defaults when no file exists. The second return
// value is the path the configuration was read from, empty when defaults were
// used.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		def, err := DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		resolved = def
	}

	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == "":
		resolved = ""
	default:
		return nil, "", fmt.Errorf("read config %s: %w", resolved, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

// WriteSample writes the embedded sample configuration to path, creating
// parent directories. Refuses to overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
