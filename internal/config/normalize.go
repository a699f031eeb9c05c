package config

import (
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() {
	c.Output.Dir = expandPath(strings.TrimSpace(c.Output.Dir))
	c.Output.Suffix = strings.TrimSpace(c.Output.Suffix)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Dir = expandPath(strings.TrimSpace(c.Logging.Dir))
}

// expandPath resolves the ~ shortcut against the current user's home.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
