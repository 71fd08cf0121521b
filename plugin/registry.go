package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/xraph/chainage/progress"
	"github.com/xraph/chainage/target"
)

// DefaultHookTimeout bounds how long a single hook call may take.
const DefaultHookTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// Hook implementations are discovered once at registration time. Every hook
// call receives its own copy of the event's values.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onTargetCreated    []OnTargetCreated
	onProgressRecorded []OnProgressRecorded
	onProgressReplaced []OnProgressReplaced
	onProgressRejected []OnProgressRejected
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultHookTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-call hook timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnTargetCreated); ok {
		r.onTargetCreated = append(r.onTargetCreated, v)
	}
	if v, ok := p.(OnProgressRecorded); ok {
		r.onProgressRecorded = append(r.onProgressRecorded, v)
	}
	if v, ok := p.(OnProgressReplaced); ok {
		r.onProgressReplaced = append(r.onProgressReplaced, v)
	}
	if v, ok := p.(OnProgressRejected); ok {
		r.onProgressRejected = append(r.onProgressRejected, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// implementedInterfaces lists the hook interfaces a plugin implements.
func implementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	check := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	check(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	check(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	check(reflect.TypeOf((*OnTargetCreated)(nil)).Elem(), "OnTargetCreated")
	check(reflect.TypeOf((*OnProgressRecorded)(nil)).Elem(), "OnProgressRecorded")
	check(reflect.TypeOf((*OnProgressReplaced)(nil)).Elem(), "OnProgressReplaced")
	check(reflect.TypeOf((*OnProgressRejected)(nil)).Elem(), "OnProgressRejected")

	return interfaces
}

// EmitInit emits the init event.
func (r *Registry) EmitInit(ctx context.Context, l interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, l)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown emits the shutdown event.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTargetCreated emits a target created event.
func (r *Registry) EmitTargetCreated(ctx context.Context, t *target.Target) {
	r.mu.RLock()
	plugins := r.onTargetCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		tc := t.Clone()
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTargetCreated(ctx, tc)
		}); err != nil {
			r.logger.Warn("plugin OnTargetCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProgressRecorded emits a progress recorded event.
func (r *Registry) EmitProgressRecorded(ctx context.Context, e *progress.Entry) {
	r.mu.RLock()
	plugins := r.onProgressRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		ec := e.Clone()
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProgressRecorded(ctx, ec)
		}); err != nil {
			r.logger.Warn("plugin OnProgressRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProgressReplaced emits a progress replaced event.
func (r *Registry) EmitProgressReplaced(ctx context.Context, previous, current *progress.Entry) {
	r.mu.RLock()
	plugins := r.onProgressReplaced
	r.mu.RUnlock()

	for _, p := range plugins {
		pc, cc := previous.Clone(), current.Clone()
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProgressReplaced(ctx, pc, cc)
		}); err != nil {
			r.logger.Warn("plugin OnProgressReplaced failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProgressRejected emits a progress rejected event.
func (r *Registry) EmitProgressRejected(ctx context.Context, packageID string, c progress.Candidate, violations progress.Violations) {
	r.mu.RLock()
	plugins := r.onProgressRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		vc := slices.Clone(violations)
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProgressRejected(ctx, packageID, c, vc)
		}); err != nil {
			r.logger.Warn("plugin OnProgressRejected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block report intake.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
