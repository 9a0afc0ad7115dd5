// Package config loads kwmap settings from <workspace>/.kwmap/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"kwmap/internal/record"
)

// DirName is the per-workspace settings directory.
const DirName = ".kwmap"

// Config holds all kwmap configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// ImportConfig configures the sheet layouts.
type ImportConfig struct {
	Product SheetLayout `yaml:"product"`
	Keyword SheetLayout `yaml:"keyword"`
}

// SheetLayout places the category row and the first data row, zero-based.
type SheetLayout struct {
	HeaderRow int `yaml:"header_row"`
	DataStart int `yaml:"data_start"`
}

// SearchConfig configures the live search boxes.
type SearchConfig struct {
	Debounce string `yaml:"debounce"` // Go duration, e.g. 200ms
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	PageSize     int    `yaml:"page_size"`     // table rows shown before the terminal size is known
	ToastTimeout string `yaml:"toast_timeout"` // how long status toasts stay visible
	DarkMode     *bool  `yaml:"dark_mode,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Import: ImportConfig{
			Product: SheetLayout{HeaderRow: record.ProductHeaderRow, DataStart: record.ProductDataStart},
			Keyword: SheetLayout{HeaderRow: record.KeywordHeaderRow, DataStart: record.KeywordDataStart},
		},
		Search: SearchConfig{
			Debounce: "200ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			PageSize:     10,
			ToastTimeout: "3s",
		},
	}
}

// Path returns the config file location inside workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KWMAP_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if v := os.Getenv("KWMAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KWMAP_DEBOUNCE"); v != "" {
		c.Search.Debounce = v
	}
	if v := os.Getenv("KWMAP_DARK_MODE"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.UI.DarkMode = &on
		}
	}
}

// GetDebounce returns the search debounce window.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Search.Debounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}

// GetToastTimeout returns how long status toasts stay visible.
func (c *Config) GetToastTimeout() time.Duration {
	d, err := time.ParseDuration(c.UI.ToastTimeout)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}

// ProductSchema returns the product schema with the configured rows.
func (c *Config) ProductSchema() record.Schema[record.Product] {
	return record.ProductSchema().WithRows(c.Import.Product.HeaderRow, c.Import.Product.DataStart)
}

// KeywordSchema returns the keyword schema with the configured rows.
func (c *Config) KeywordSchema() record.Schema[record.Keyword] {
	return record.KeywordSchema().WithRows(c.Import.Keyword.HeaderRow, c.Import.Keyword.DataStart)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, l := range map[string]SheetLayout{"product": c.Import.Product, "keyword": c.Import.Keyword} {
		if l.HeaderRow < 0 {
			return fmt.Errorf("import.%s.header_row must be >= 0, got %d", name, l.HeaderRow)
		}
		if l.DataStart <= l.HeaderRow {
			return fmt.Errorf("import.%s.data_start (%d) must be after header_row (%d)", name, l.DataStart, l.HeaderRow)
		}
	}
	if _, err := time.ParseDuration(c.Search.Debounce); err != nil {
		return fmt.Errorf("invalid search.debounce %q: %w", c.Search.Debounce, err)
	}
	if c.UI.ToastTimeout != "" {
		if _, err := time.ParseDuration(c.UI.ToastTimeout); err != nil {
			return fmt.Errorf("invalid ui.toast_timeout %q: %w", c.UI.ToastTimeout, err)
		}
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
