package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from an optional YAML file
// named by CONFIG_FILE; environment variables override the file.
type Config struct {
	Port        string `yaml:"port"`
	DataBaseURL string `yaml:"data_base_url"`
	DataFile    string `yaml:"data_file"`
	LogLevel    string `yaml:"log_level"`
}

const defaultPort = "8080"

func FromEnv() (Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	override(&cfg.Port, "PORT")
	override(&cfg.DataBaseURL, "DATA_BASE_URL")
	override(&cfg.DataFile, "DATA_FILE")
	override(&cfg.LogLevel, "LOG_LEVEL")

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DataBaseURL == "" {
		// the page fetches the snapshot from this very server
		cfg.DataBaseURL = "http://127.0.0.1:" + cfg.Port
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func override(field *string, env string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}
