package extension

import "time"

// Config holds the chainage extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.chainage" or "chainage" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DefaultBinWidthKm is the bucket width used by BinnedSeries when the
	// caller passes zero (default: 1).
	DefaultBinWidthKm float64 `json:"default_bin_width_km" mapstructure:"default_bin_width_km" yaml:"default_bin_width_km"`

	// HookTimeout bounds each plugin hook call (default: 5s).
	HookTimeout time.Duration `json:"hook_timeout" mapstructure:"hook_timeout" yaml:"hook_timeout"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultBinWidthKm: 1,
		HookTimeout:       5 * time.Second,
	}
}
