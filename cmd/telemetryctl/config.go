package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// config holds defaults for flags the user didn't set explicitly, loaded
// from ~/.telemetryctl.yaml. The struct-with-yaml-tags shape follows
// tamzrod-modbus-replicator's config.Config convention.
type config struct {
	Port   string `yaml:"port"`
	Baud   int    `yaml:"baud"`
	Listen string `yaml:"listen"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".telemetryctl.yaml"), nil
}

// loadConfig reads ~/.telemetryctl.yaml if present. A missing file is not
// an error — every field just stays at its zero value.
func loadConfig() (*config, error) {
	path, err := configPath()
	if err != nil {
		return &config{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyConfigDefaults fills in unset --port/--baud/--listen flags from cfg.
func applyConfigDefaults(cfg *config) {
	if portName == "" {
		portName = cfg.Port
	}
	if !rootCmd.PersistentFlags().Changed("baud") && cfg.Baud != 0 {
		baudRate = cfg.Baud
	}
	if !bridgeCmd.Flags().Changed("listen") && cfg.Listen != "" {
		wsListenAddr = cfg.Listen
	}
}
