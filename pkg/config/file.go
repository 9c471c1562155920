package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const EnvPrefix = "RZORK"

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	p, err := xdg.ConfigFile("rzork/config.json")
	if err != nil {
		return "", fmt.Errorf("failed to get config file path: %w", err)
	}
	return p, nil
}

// Load reads the config file at path. A missing file yields the defaults.
// RZORK_API_KEY, RZORK_MODEL and RZORK_BASE_URL override file values.
func Load(path string) (Config, error) {
	return load(path, true)
}

// LoadFile is like Load but ignores the environment. Use it to change the
// file without persisting values that only came from the environment.
func LoadFile(path string) (Config, error) {
	return load(path, false)
}

func load(path string, env bool) (Config, error) {
	d := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("base_url", d.BaseURL)
	if env {
		for _, k := range Keys {
			if err := v.BindEnv(k); err != nil {
				return Config{}, fmt.Errorf("failed to bind %s env: %w", k, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg.normalize(), nil
}

// Save writes cfg to path as JSON, readable only by the owner.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	bs, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, bs, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
