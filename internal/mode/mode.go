// Package mode provides the minor-mode registry: named, composable
// behaviors that can be layered onto a file's primary editing behavior.
//
// The registry is the outbound capability the autoload dispatcher calls
// into. Mode behavior itself lives elsewhere; this package only tracks
// which modes exist and which are enabled, and guarantees that enabling
// an already-enabled mode is a no-op.
package mode

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jhirn/doom-emacs/internal/autoload"
)

// Sentinel errors for the registry.
var (
	// ErrUnknownMode is returned when looking up a mode that was never
	// registered.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode is a secondary behavior that can be switched on or off. A
// positive flag enables the mode, zero or negative disables it.
// Implementations must tolerate repeated enables.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "whitespace").
	Name() string

	// Enable switches the mode on (flag > 0) or off (flag <= 0).
	Enable(flag int) error
}

// Func adapts a name and a toggle function to the Mode interface.
type Func struct {
	// ModeName is the unique mode identifier.
	ModeName string

	// Toggle is invoked with the enable flag.
	Toggle func(flag int) error
}

// Name implements Mode.
func (f Func) Name() string { return f.ModeName }

// Enable implements Mode.
func (f Func) Enable(flag int) error {
	if f.Toggle == nil {
		return nil
	}
	return f.Toggle(flag)
}

// Registry tracks registered modes and their enabled state.
type Registry struct {
	mu      sync.RWMutex
	modes   map[string]Mode
	enabled map[string]bool
}

// NewRegistry creates an empty mode registry.
func NewRegistry() *Registry {
	return &Registry{
		modes:   make(map[string]Mode),
		enabled: make(map[string]bool),
	}
}

// Register adds a mode to the registry. A mode with the same name
// replaces the previous registration; its enabled state is reset.
func (r *Registry) Register(m Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes[m.Name()] = m
	delete(r.enabled, m.Name())
}

// Get returns a mode by name, or nil if not registered.
func (r *Registry) Get(name string) Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modes[name]
}

// Names returns the registered mode names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	return names
}

// Enabled reports whether the named mode is currently enabled.
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// Enable switches the named mode on or off. Enabling an already-enabled
// mode (or disabling a disabled one) is a no-op and never reaches the
// mode implementation.
func (r *Registry) Enable(name string, flag int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}

	on := flag > 0
	if r.enabled[name] == on {
		return nil
	}

	if err := m.Enable(flag); err != nil {
		return err
	}
	r.enabled[name] = on
	return nil
}

// Action returns an autoload action that enables the named mode through
// the registry. The lookup happens at invocation time, so the action may
// be built before the mode is registered; invoking it while the mode is
// still missing returns ErrUnknownMode, which the dispatcher routes to
// its diagnostic sink.
func (r *Registry) Action(name string) autoload.Action {
	return autoload.ActionFunc(func(flag int) error {
		return r.Enable(name, flag)
	})
}
