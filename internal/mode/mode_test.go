package mode

import (
	"errors"
	"testing"

	"github.com/jhirn/doom-emacs/internal/autoload"
)

func countingMode(name string, count *int) Mode {
	return Func{
		ModeName: name,
		Toggle: func(flag int) error {
			*count++
			return nil
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	var n int
	r.Register(countingMode("whitespace", &n))

	if got := r.Get("whitespace"); got == nil {
		t.Fatal("Get() = nil for registered mode")
	}
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestRegistry_Enable_Idempotent(t *testing.T) {
	r := NewRegistry()
	var n int
	r.Register(countingMode("whitespace", &n))

	for i := 0; i < 3; i++ {
		if err := r.Enable("whitespace", 1); err != nil {
			t.Fatalf("Enable() error: %v", err)
		}
	}

	if n != 1 {
		t.Errorf("mode toggled %d times, want 1", n)
	}
	if !r.Enabled("whitespace") {
		t.Error("mode not reported enabled")
	}
}

func TestRegistry_EnableDisableCycle(t *testing.T) {
	r := NewRegistry()
	var n int
	r.Register(countingMode("lint", &n))

	steps := []struct {
		flag    int
		want    int
		enabled bool
	}{
		{1, 1, true},   // enable
		{1, 1, true},   // repeat enable is a no-op
		{0, 2, false},  // disable
		{-1, 2, false}, // repeat disable is a no-op
		{1, 3, true},   // re-enable
	}

	for i, s := range steps {
		if err := r.Enable("lint", s.flag); err != nil {
			t.Fatalf("step %d: Enable(%d) error: %v", i, s.flag, err)
		}
		if n != s.want {
			t.Errorf("step %d: toggled %d times, want %d", i, n, s.want)
		}
		if got := r.Enabled("lint"); got != s.enabled {
			t.Errorf("step %d: Enabled() = %v, want %v", i, got, s.enabled)
		}
	}
}

func TestRegistry_Enable_Unknown(t *testing.T) {
	r := NewRegistry()

	if err := r.Enable("ghost", 1); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Enable(ghost) = %v, want ErrUnknownMode", err)
	}
}

func TestRegistry_Enable_PropagatesModeError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("activation failed")
	r.Register(Func{ModeName: "broken", Toggle: func(int) error { return boom }})

	if err := r.Enable("broken", 1); !errors.Is(err, boom) {
		t.Errorf("Enable() = %v, want %v", err, boom)
	}
	if r.Enabled("broken") {
		t.Error("failed activation left mode marked enabled")
	}
}

func TestRegistry_ReregisterResetsState(t *testing.T) {
	r := NewRegistry()
	var n int
	r.Register(countingMode("fmt", &n))
	if err := r.Enable("fmt", 1); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}

	r.Register(countingMode("fmt", &n))
	if r.Enabled("fmt") {
		t.Error("re-registered mode kept stale enabled state")
	}
}

func TestRegistry_Action(t *testing.T) {
	r := NewRegistry()
	var n int

	// Built before the mode exists: lookup is deferred to invocation.
	act := r.Action("late")
	if err := act.Enable(autoload.EnableFlag); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("early invocation = %v, want ErrUnknownMode", err)
	}

	r.Register(countingMode("late", &n))
	if err := act.Enable(autoload.EnableFlag); err != nil {
		t.Fatalf("Enable() error: %v", err)
	}
	if n != 1 {
		t.Errorf("mode toggled %d times, want 1", n)
	}
}
