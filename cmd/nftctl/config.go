package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// deployConfig holds the collection parameters of the deploy command. Flags
// given on the command line take precedence over the file values.
type deployConfig struct {
	Authority string `yaml:"authority"`
	Approvals *bool  `yaml:"approvals"`
	Name      string `yaml:"name"`
	Symbol    string `yaml:"symbol"`
	BaseURI   string `yaml:"base_uri"`
}

func loadDeployConfig(path string) (deployConfig, error) {
	var cfg deployConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

// merge overrides cfg values with the explicitly set flags.
func (cfg *deployConfig) merge(set map[string]string) error {
	for name, val := range set {
		switch name {
		case "authority":
			cfg.Authority = val
		case "approvals":
			b := val == "true"
			if !b && val != "false" {
				return fmt.Errorf("invalid approvals flag value '%s'", val)
			}
			cfg.Approvals = &b
		case "name":
			cfg.Name = val
		case "symbol":
			cfg.Symbol = val
		case "base-uri":
			cfg.BaseURI = val
		}
	}
	return nil
}

func (cfg deployConfig) approvalsEnabled() bool {
	return cfg.Approvals == nil || *cfg.Approvals
}
