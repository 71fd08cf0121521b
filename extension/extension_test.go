package extension

import (
	"testing"
	"time"
)

func TestMergeWithDefaults(t *testing.T) {
	e := New()
	cfg := e.mergeWithDefaults(Config{})

	if cfg.DefaultBinWidthKm != 1 {
		t.Errorf("DefaultBinWidthKm = %v, want 1", cfg.DefaultBinWidthKm)
	}
	if cfg.HookTimeout != 5*time.Second {
		t.Errorf("HookTimeout = %v, want 5s", cfg.HookTimeout)
	}

	cfg = e.mergeWithDefaults(Config{DefaultBinWidthKm: 0.5, HookTimeout: time.Second})
	if cfg.DefaultBinWidthKm != 0.5 || cfg.HookTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestMergeConfigurations(t *testing.T) {
	e := New()

	yaml := Config{DefaultBinWidthKm: 2}
	programmatic := Config{DisableMigrate: true, DefaultBinWidthKm: 0.25, HookTimeout: 3 * time.Second}

	cfg := e.mergeConfigurations(yaml, programmatic)
	if !cfg.DisableMigrate {
		t.Error("programmatic DisableMigrate should win")
	}
	if cfg.DefaultBinWidthKm != 2 {
		t.Errorf("DefaultBinWidthKm = %v, YAML should take precedence", cfg.DefaultBinWidthKm)
	}
	if cfg.HookTimeout != 3*time.Second {
		t.Errorf("HookTimeout = %v, programmatic should fill the gap", cfg.HookTimeout)
	}
}

func TestOptions(t *testing.T) {
	e := New(
		WithDisableMigrate(),
		WithDefaultBinWidthKm(0.5),
		WithHookTimeout(time.Second),
		WithRequireConfig(true),
	)
	if !e.config.DisableMigrate || e.config.DefaultBinWidthKm != 0.5 ||
		e.config.HookTimeout != time.Second || !e.config.RequireConfig {
		t.Errorf("options not applied: %+v", e.config)
	}

	opts := e.buildLedgerOpts()
	// skip-migrate, bin width and hook timeout
	if len(opts) != 3 {
		t.Errorf("got %d ledger options, want 3", len(opts))
	}
	if e.Engine() != nil {
		t.Error("engine should be nil before Register")
	}
}
