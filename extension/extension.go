// Package extension provides the Forge extension adapter for chainage.
//
// It registers a *chainage.Ledger in the Forge DI container and ties its
// start and stop to the application lifecycle.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.chainage" or "chainage" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/chainage"
	"github.com/xraph/chainage/store"
	"github.com/xraph/chainage/store/memory"
	"github.com/xraph/chainage/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "chainage"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Range-based progress ledger for linear works"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts chainage as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *chainage.Ledger
	store      store.Store
	ledgerOpts []chainage.Option
}

// New creates a new chainage Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Ledger.
// This is nil until Register is called.
func (e *Extension) Engine() *chainage.Ledger { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// builds the ledger, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build ledger options from resolved config.
	opts := e.buildLedgerOpts()

	eng := chainage.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*chainage.Ledger, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("chainage: extension not initialized")
	}

	if err := e.engine.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("chainage: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildLedgerOpts constructs chainage.Option values from the resolved config.
func (e *Extension) buildLedgerOpts() []chainage.Option {
	opts := make([]chainage.Option, 0, len(e.ledgerOpts)+3)

	// Apply config-derived options.
	if e.config.DisableMigrate {
		opts = append(opts, chainage.WithSkipMigrate())
	}
	if e.config.DefaultBinWidthKm > 0 {
		opts = append(opts, chainage.WithDefaultBinWidth(types.Km(e.config.DefaultBinWidthKm)))
	}
	if e.config.HookTimeout > 0 {
		opts = append(opts, chainage.WithHookTimeout(e.config.HookTimeout))
	}

	// Append any pass-through ledger options.
	opts = append(opts, e.ledgerOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("chainage: configuration is required but not found in config files; " +
				"ensure 'extensions.chainage' or 'chainage' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("chainage: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("default_bin_width_km", e.config.DefaultBinWidthKm),
		forge.F("hook_timeout", e.config.HookTimeout),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.chainage" first (namespaced pattern).
	if cm.IsSet("extensions.chainage") {
		if err := cm.Bind("extensions.chainage", &cfg); err == nil {
			e.Logger().Debug("chainage: loaded config from file",
				forge.F("key", "extensions.chainage"),
			)
			return cfg, true
		}
		e.Logger().Warn("chainage: failed to bind extensions.chainage config",
			forge.F("error", "bind failed"),
		)
	}

	// Try short "chainage" key.
	if cm.IsSet("chainage") {
		if err := cm.Bind("chainage", &cfg); err == nil {
			e.Logger().Debug("chainage: loaded config from file",
				forge.F("key", "chainage"),
			)
			return cfg, true
		}
		e.Logger().Warn("chainage: failed to bind chainage config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.DefaultBinWidthKm <= 0 {
		cfg.DefaultBinWidthKm = defaults.DefaultBinWidthKm
	}
	if cfg.HookTimeout <= 0 {
		cfg.HookTimeout = defaults.HookTimeout
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// Numeric fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.DefaultBinWidthKm == 0 && programmaticConfig.DefaultBinWidthKm != 0 {
		yamlConfig.DefaultBinWidthKm = programmaticConfig.DefaultBinWidthKm
	}
	if yamlConfig.HookTimeout == 0 && programmaticConfig.HookTimeout != 0 {
		yamlConfig.HookTimeout = programmaticConfig.HookTimeout
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
