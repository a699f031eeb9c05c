package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"exportfix/internal/archive"
	"exportfix/internal/config"
)

const testID = "0123456789abcdef0123456789abcdef"

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--log-level", "error"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = dir
	cfg.Logging.Level = "error"
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// writeFixtureZip creates an export archive wrapped in a single root folder,
// with identifier-suffixed names and one url-encoded internal link.
func writeFixtureZip(t *testing.T, dir string) string {
	t.Helper()
	root := "Export-" + testID
	entries := []archive.Entry{
		{
			Path: root + "/Notes " + testID + ".md",
			Data: []byte("[page](Sub%20" + testID + "/Page%20" + testID + ".md)\n"),
		},
		{
			Path: root + "/Sub " + testID + "/Page " + testID + ".md",
			Data: []byte("# Page\nbody\n"),
		},
		{
			Path: root + "/Sub " + testID + "/data.bin",
			Data: []byte{0x00, 0x01, 0xff},
		},
	}
	path := filepath.Join(dir, "fixture.zip")
	if err := archive.WriteZip(path, entries); err != nil {
		t.Fatalf("write fixture zip: %v", err)
	}
	return path
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		target := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
