// Package modules sequences the loading of subordinate subsystems.
//
// The distribution's feature set is declared in a YAML manifest listing
// module names in load order. The Loader resolves each name against the
// registered module constructors and initializes them strictly in
// manifest order, shutting already-initialized modules back down when a
// later one fails.
package modules

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for module loading.
var (
	// ErrUnknownModule is returned when the manifest names a module
	// with no registered constructor.
	ErrUnknownModule = errors.New("unknown module")

	// ErrAlreadyLoaded is returned when Load is called twice.
	ErrAlreadyLoaded = errors.New("modules already loaded")
)

// Module is a subordinate subsystem initialized during bootstrap.
type Module interface {
	// Name returns the unique module identifier.
	Name() string

	// Init starts the module. Options come from the manifest entry.
	Init(ctx context.Context, opts map[string]any) error

	// Shutdown stops the module and releases its resources.
	Shutdown(ctx context.Context) error
}

// Constructor builds a module instance.
type Constructor func() Module

// Loader resolves manifest entries and initializes modules in order.
type Loader struct {
	mu           sync.Mutex
	constructors map[string]Constructor
	loaded       []Module
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		constructors: make(map[string]Constructor),
	}
}

// RegisterConstructor makes a module available to manifests under name.
// A later registration under the same name replaces the earlier one.
func (l *Loader) RegisterConstructor(name string, c Constructor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.constructors[name] = c
}

// Load initializes every enabled manifest entry in order. On failure,
// modules initialized so far are shut down in reverse order and the
// failure is returned wrapped with the offending module's name.
func (l *Loader) Load(ctx context.Context, m Manifest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.loaded) > 0 {
		return ErrAlreadyLoaded
	}

	for _, entry := range m.Modules {
		if entry.Disabled {
			continue
		}

		ctor, ok := l.constructors[entry.Name]
		if !ok {
			l.unwindLocked(ctx)
			return fmt.Errorf("%w: %s", ErrUnknownModule, entry.Name)
		}

		mod := ctor()
		if err := mod.Init(ctx, entry.Options); err != nil {
			l.unwindLocked(ctx)
			return fmt.Errorf("initializing module %s: %w", entry.Name, err)
		}
		l.loaded = append(l.loaded, mod)
	}

	return nil
}

// Loaded returns the names of initialized modules in load order.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, len(l.loaded))
	for i, mod := range l.loaded {
		names[i] = mod.Name()
	}
	return names
}

// Shutdown stops all loaded modules in reverse load order. Shutdown
// errors are joined; a failing module does not stop the unwind.
func (l *Loader) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unwindLocked(ctx)
}

func (l *Loader) unwindLocked(ctx context.Context) error {
	var errs []error
	for i := len(l.loaded) - 1; i >= 0; i-- {
		if err := l.loaded[i].Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down module %s: %w", l.loaded[i].Name(), err))
		}
	}
	l.loaded = nil
	return errors.Join(errs...)
}
