package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"newspulse/internal/budget"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// ProviderConfig covers the article-search provider.
type ProviderConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	PageCap  int    `yaml:"page_cap"`
	Language string `yaml:"language"`
}

// AnalysisConfig covers sampling behavior.
type AnalysisConfig struct {
	MaxHeadlines int `yaml:"max_headlines"`
}

// Config is the full configuration surface.
type Config struct {
	Transport string            `yaml:"transport"` // "stdio" is the only supported value today
	Provider  ProviderConfig    `yaml:"provider"`
	Budget    budget.Config     `yaml:"budget"`
	Rate      budget.RateLimits `yaml:"rate"`
	Analysis  AnalysisConfig    `yaml:"analysis"`
	Sources   []string          `yaml:"sources"`
}

// APIKey returns the resolved credential (config file or env var).
func (c *Config) APIKey() string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	return os.Getenv("NEWSPULSE_API_KEY")
}

// DefaultConfigPath is where Load looks without an explicit --config.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newspulse", "config.yaml")
}

// CachePath is the on-disk source-resolution cache location.
func CachePath() string {
	return filepath.Join(xdg.CacheHome, "newspulse", "sources.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, falling back to embedded defaults when the
// file does not exist (and writing them out on first run).
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to the config path on first run; non-fatal if
			// that fails, the embedded defaults still apply.
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.Provider.BaseURL != "" {
		u, err := url.Parse(cfg.Provider.BaseURL)
		if err != nil {
			return fmt.Errorf("provider base_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("provider base_url scheme must be http or https, got %q", u.Scheme)
		}
	}
	if cfg.Provider.PageCap < 0 {
		return fmt.Errorf("provider page_cap must not be negative")
	}
	if cfg.Budget.MonthlyAllowance < 0 {
		return fmt.Errorf("budget monthly_allowance must not be negative")
	}
	if cfg.Budget.SoftCapPct < 0 || cfg.Budget.SoftCapPct > 100 {
		return fmt.Errorf("budget soft_cap_pct must be within 0..100")
	}
	if cfg.Budget.HardCapPct < 0 || cfg.Budget.HardCapPct > 100 {
		return fmt.Errorf("budget hard_cap_pct must be within 0..100")
	}
	if cfg.Budget.SoftCapPct > 0 && cfg.Budget.HardCapPct > 0 &&
		cfg.Budget.SoftCapPct > cfg.Budget.HardCapPct {
		return fmt.Errorf("budget soft_cap_pct (%v) must not exceed hard_cap_pct (%v)",
			cfg.Budget.SoftCapPct, cfg.Budget.HardCapPct)
	}
	for i, s := range cfg.Sources {
		if s == "" {
			return fmt.Errorf("source %d: name must not be empty", i)
		}
	}
	return nil
}
