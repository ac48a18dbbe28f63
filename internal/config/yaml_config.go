package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Holds the source-reputation table, which is easier to maintain in
// YAML than in env vars.
type YAMLConfig struct {
	TrustedDomains []TrustedDomainConfig `yaml:"trusted_domains"`
	Defaults       DefaultsConfig        `yaml:"defaults"`
}

// TrustedDomainConfig assigns a reputation weight to a source domain.
type TrustedDomainConfig struct {
	Domain string  `yaml:"domain"`
	Weight float64 `yaml:"weight"` // 0-1, clamped on load
}

// DefaultsConfig defines fallback reputation settings.
type DefaultsConfig struct {
	BaseTrust float64 `yaml:"base_trust"` // weight for domains not in the table
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Defaults.BaseTrust <= 0 {
		cfg.Defaults.BaseTrust = 0.5
	}
	for i := range cfg.TrustedDomains {
		cfg.TrustedDomains[i].Weight = clamp01(cfg.TrustedDomains[i].Weight)
	}

	return &cfg, nil
}

// DomainWeights flattens the trusted-domain table into a lookup map with
// lowercased keys. Returns nil when the config is nil.
func (c *YAMLConfig) DomainWeights() map[string]float64 {
	if c == nil || len(c.TrustedDomains) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(c.TrustedDomains))
	for _, d := range c.TrustedDomains {
		if d.Domain == "" {
			continue
		}
		weights[strings.ToLower(d.Domain)] = d.Weight
	}
	return weights
}

// BaseTrust returns the fallback weight for unlisted domains.
func (c *YAMLConfig) BaseTrust() float64 {
	if c == nil {
		return 0.5
	}
	return clamp01(c.Defaults.BaseTrust)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
