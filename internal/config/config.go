package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the httpf-serve configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Root       string `yaml:"root"`
	Index      string `yaml:"index"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Root:       ".",
		Index:      "index.html",
		LogLevel:   "info",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
