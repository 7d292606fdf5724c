package modules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jhirn/doom-emacs/internal/location"
)

// Manifest declares which modules to load, in order.
type Manifest struct {
	// Modules are the entries in load order.
	Modules []Entry `yaml:"modules"`
}

// Entry is one manifest line: a module name plus options.
type Entry struct {
	// Name is the module identifier.
	Name string `yaml:"name"`

	// Disabled skips the entry without removing it from the file.
	Disabled bool `yaml:"disabled,omitempty"`

	// Options are passed verbatim to the module's Init.
	Options map[string]any `yaml:"options,omitempty"`
}

// ManifestFile returns the conventional manifest path for a layout:
// <root>/modules/modules.yaml.
func ManifestFile(loc location.Registry) string {
	return filepath.Join(loc.Modules, "modules.yaml")
}

// LoadManifest reads a manifest from path. A missing file yields an
// empty manifest, not an error: a tree without a manifest simply loads
// no modules.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return m, err
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	for i, entry := range m.Modules {
		if entry.Name == "" {
			return Manifest{}, fmt.Errorf("manifest %s: entry %d has no name", path, i)
		}
	}

	return m, nil
}
