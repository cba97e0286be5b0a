// Package config defines the sync client configuration.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abgdnv/storefront/pkg/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	API     APIConfig     `koanf:"api"`
	Cart    CartConfig    `koanf:"cart"`
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

// APIConfig locates the backend and bounds request latency.
type APIConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

// CartConfig tunes the write-coalescing window of the cart store.
type CartConfig struct {
	DebounceWindow time.Duration `koanf:"debounceWindow"`
}

// StorageConfig locates the persisted client profile.
type StorageConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Defaults is the lowest-priority configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"api.timeout":         "10s",
		"cart.debounceWindow": "300ms",
		"storage.path":        "storefront_state.json",
		"log.level":           "info",
	}
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  baseUrl: %s\n", c.API.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.API.Timeout))
	b.WriteString("\n--- Cart ---\n")
	b.WriteString(fmt.Sprintf("  debounceWindow: %s\n", c.Cart.DebounceWindow))
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Storage.Path))
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Log.Level))
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL cannot be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base URL: %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api timeout: %v", c.API.Timeout)
	}
	if c.Cart.DebounceWindow <= 0 {
		return fmt.Errorf("invalid cart debounce window: %v", c.Cart.DebounceWindow)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	return nil
}
