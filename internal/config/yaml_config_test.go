package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
}

func TestLoadYAMLConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg, err := LoadYAMLConfig()
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("cfg = %+v, want nil for a missing optional file", cfg)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	writeConfigFile(t, `
trusted_domains:
  - domain: Reuters.com
    weight: 0.9
  - domain: random.blog
    weight: 1.7
defaults:
  base_trust: 0.4
`)

	cfg, err := LoadYAMLConfig()
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadYAMLConfig() returned nil for an existing file")
	}

	weights := cfg.DomainWeights()
	if weights["reuters.com"] != 0.9 {
		t.Errorf("reuters.com weight = %v, want 0.9 (lowercased key)", weights["reuters.com"])
	}
	if weights["random.blog"] != 1.0 {
		t.Errorf("random.blog weight = %v, want clamped 1.0", weights["random.blog"])
	}
	if cfg.BaseTrust() != 0.4 {
		t.Errorf("BaseTrust() = %v, want 0.4", cfg.BaseTrust())
	}
}

func TestLoadYAMLConfigInvalid(t *testing.T) {
	writeConfigFile(t, "trusted_domains: [not: valid: yaml")

	if _, err := LoadYAMLConfig(); err == nil {
		t.Fatal("LoadYAMLConfig() accepted malformed YAML")
	}
}

func TestYAMLConfigNilSafety(t *testing.T) {
	var cfg *YAMLConfig

	if w := cfg.DomainWeights(); w != nil {
		t.Errorf("DomainWeights() on nil = %v, want nil", w)
	}
	if bt := cfg.BaseTrust(); bt != 0.5 {
		t.Errorf("BaseTrust() on nil = %v, want 0.5", bt)
	}
}
