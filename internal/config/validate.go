package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.New("output.dir must be set")
	}
	if c.Output.Suffix == "" {
		return errors.New("output.suffix must be set")
	}
	if c.Transform.Workers < 0 {
		return errors.New("transform.workers must be zero or positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
