package location

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Layout(t *testing.T) {
	r := New("/opt/doom", "zeus")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"root", r.Root, "/opt/doom"},
		{"core", r.Core, "/opt/doom/core"},
		{"modules", r.Modules, "/opt/doom/modules"},
		{"local", r.Local, "/opt/doom/.local"},
		{"etc", r.Etc, "/opt/doom/.local/@zeus/etc"},
		{"cache", r.Cache, "/opt/doom/.local/@zeus/cache"},
		{"packages", r.Packages, "/opt/doom/.local/packages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNew_Deterministic(t *testing.T) {
	a := New("/srv/shared/doom", "athena")
	b := New("/srv/shared/doom", "athena")

	if a != b {
		t.Errorf("identical inputs produced different registries: %+v vs %+v", a, b)
	}
}

func TestNew_HostNamespacing(t *testing.T) {
	a := New("/srv/shared/doom", "athena")
	b := New("/srv/shared/doom", "hermes")

	if a.Etc == b.Etc {
		t.Errorf("etc dirs collide across hosts: %q", a.Etc)
	}
	if a.Cache == b.Cache {
		t.Errorf("cache dirs collide across hosts: %q", a.Cache)
	}
	// Host-independent directories must be shared.
	if a.Packages != b.Packages {
		t.Errorf("packages dir differs across hosts: %q vs %q", a.Packages, b.Packages)
	}
}

func TestNew_CleansRoot(t *testing.T) {
	r := New("/opt/doom/", "zeus")
	if r.Root != filepath.FromSlash("/opt/doom") {
		t.Errorf("root not cleaned: %q", r.Root)
	}
}

func TestEnsureDirs(t *testing.T) {
	r := New(t.TempDir(), "testhost")
	if err := r.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error: %v", err)
	}

	for _, dir := range []string{r.Local, r.Etc, r.Cache, r.Packages} {
		if !dirExists(t, dir) {
			t.Errorf("directory %q was not created", dir)
		}
	}
}

func dirExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
