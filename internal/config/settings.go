package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Settings holds the user preferences of the immocalc CLI and server.
type Settings struct {
	General GeneralSettings `toml:"general"`
	Tax     TaxSettings     `toml:"tax"`
	Server  ServerSettings  `toml:"server"`
}

// GeneralSettings holds output preferences.
type GeneralSettings struct {
	DefaultFormat string `toml:"default_format"`
	OutputDir     string `toml:"output_dir,omitempty"`
	Verbose       bool   `toml:"verbose"`
}

// TaxSettings holds the default tariff selection.
type TaxSettings struct {
	TableYear    int     `toml:"table_year"`
	FilingStatus string  `toml:"filing_status"`
	Policy       string  `toml:"policy"`
	ShiftRate    float64 `toml:"shift_rate"`
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr       string        `toml:"addr"`
	RateLimit  int           `toml:"rate_limit"`
	RateWindow time.Duration `toml:"rate_window"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			DefaultFormat: "console",
			OutputDir:     ".",
		},
		Tax: TaxSettings{
			TableYear:    2026,
			FilingStatus: string(domain.FilingSingle),
			Policy:       string(domain.TaxPolicyFlat),
		},
		Server: ServerSettings{
			Addr:       ":8080",
			RateLimit:  60,
			RateWindow: time.Minute,
		},
	}
}

// SettingsDir returns the XDG-compliant settings directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "immocalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "immocalc")
}

// SettingsPath returns the full path to the settings file.
func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads a settings file, returning defaults if it doesn't
// exist. An empty path uses SettingsPath.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		path = SettingsPath()
	}
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings: %w", err)
	}

	return s, nil
}

// SaveSettings writes the settings to disk. An empty path uses SettingsPath.
func SaveSettings(path string, s Settings) error {
	if path == "" {
		path = SettingsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(s)
}

// ServerAddr returns the listen address from IMMOCALC_ADDR or the settings, in that order.
func ServerAddr(s Settings) string {
	if addr := os.Getenv("IMMOCALC_ADDR"); addr != "" {
		return addr
	}
	return s.Server.Addr
}

// TaxParams returns the default tax parameters described by the settings
func (t TaxSettings) TaxParams() domain.TaxParams {
	return domain.TaxParams{
		Policy:        domain.TaxPolicy(t.Policy),
		FilingStatus:  domain.FilingStatus(t.FilingStatus),
		IndexBrackets: t.ShiftRate != 0,
		ShiftRate:     decimal.NewFromFloat(t.ShiftRate),
	}
}
