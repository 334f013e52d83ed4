package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	base := t.TempDir()
	isolateHome(t, base)
	target := filepath.Join(base, "config.toml")

	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	requireContains(t, string(data), "[youtube]")
	requireContains(t, string(data), "api_key")
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	base := t.TempDir()
	isolateHome(t, base)
	target := filepath.Join(base, "config.toml")

	if _, _, err := runCLI(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("config init: %v", err)
	}

	_, _, err := runCLI(t, "config", "init", "--path", target)
	if err == nil {
		t.Fatal("expected error for existing config")
	}
	requireContains(t, err.Error(), "use --overwrite")

	if _, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	configPath := writeTestConfig(t)

	stdout, _, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, "Config path: "+configPath)
	requireContains(t, stdout, "Configuration valid")
}

func TestConfigValidateReportsMissingKey(t *testing.T) {
	base := t.TempDir()
	isolateHome(t, base)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte("[history]\nenabled = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := runCLI(t, "--config", configPath, "config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	requireContains(t, err.Error(), "youtube.api_key is required")
}

func TestConfigShowMasksSecrets(t *testing.T) {
	configPath := writeTestConfig(t)

	stdout, _, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "Config path: "+configPath)
	requireContains(t, stdout, "********")
	if strings.Contains(stdout, "test-youtube-key") {
		t.Fatal("expected API keys to be masked")
	}
	requireContains(t, stdout, "max_comments")
}
