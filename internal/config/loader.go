package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr              string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelDir          string   `json:"model_dir" yaml:"model_dir" toml:"model_dir"`
	TokenizerEncoding string   `json:"tokenizer_encoding" yaml:"tokenizer_encoding" toml:"tokenizer_encoding"`
	Device            string   `json:"device" yaml:"device" toml:"device"`
	DefaultMaxLength  int      `json:"default_max_length" yaml:"default_max_length" toml:"default_max_length"`
	DefaultMinLength  int      `json:"default_min_length" yaml:"default_min_length" toml:"default_min_length"`
	MaxInputTokens    int      `json:"max_input_tokens" yaml:"max_input_tokens" toml:"max_input_tokens"`
	Threads           int      `json:"threads" yaml:"threads" toml:"threads"`
	CtxSize           int      `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	CORSEnabled       bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins       []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	LogLevel          string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
