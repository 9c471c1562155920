package config

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	DefaultModel   = "zai-org/Rzork-4.5:novita"
	DefaultBaseURL = "https://router.huggingface.co/v1/chat/completions"
)

// Config is the endpoint configuration used for a single request. Values are
// copied out of a Store, so a Config never changes after it was taken.
type Config struct {
	APIKey  string `json:"api_key" mapstructure:"api_key"`
	Model   string `json:"model" mapstructure:"model"`
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

func Default() Config {
	return Config{
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
	}
}

// Ready reports whether the API key is set.
func (c Config) Ready() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) normalize() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	return c
}

// Update lists fields to replace. Nil fields keep their current value.
type Update struct {
	APIKey  *string
	Model   *string
	BaseURL *string
}

// Apply returns c with the fields set in u replaced.
func (u Update) Apply(c Config) Config {
	if u.APIKey != nil {
		c.APIKey = *u.APIKey
	}
	if u.Model != nil {
		c.Model = *u.Model
	}
	if u.BaseURL != nil {
		c.BaseURL = *u.BaseURL
	}
	return c.normalize()
}

// Keys are the names accepted by Set.
var Keys = []string{"api_key", "model", "base_url"}

// Set records value under the named key in u.
func Set(u *Update, key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (available: %s)", key, strings.Join(Keys, ", "))
	}

	switch key {
	case "api_key":
		u.APIKey = &value
	case "model":
		u.Model = &value
	case "base_url":
		u.BaseURL = &value
	}

	return nil
}

// Mask hides most of a secret for display.
func Mask(key string) string {
	if key == "" {
		return "Not set"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
