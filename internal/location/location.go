// Package location resolves the canonical directory layout of a
// distribution tree.
//
// All paths derive from a single root directory plus the current host's
// name. Transient and persistent state directories are namespaced by host
// (".local/@<host>/...") so that one tree can be shared across machines,
// over a network mount or symlink, without the machines clobbering each
// other's volatile files.
package location

import (
	"os"
	"path/filepath"
)

// Registry holds the resolved directory layout for one (root, host) pair.
// It is computed once at startup and treated as immutable afterwards.
type Registry struct {
	// Root is the top of the distribution tree.
	Root string

	// Core is the directory holding the distribution's own code.
	Core string

	// Modules is the directory holding bundled feature modules.
	Modules string

	// Local is the writable state area under the root.
	Local string

	// Etc is the host-namespaced persistent storage directory.
	Etc string

	// Cache is the host-namespaced volatile storage directory.
	Cache string

	// Packages is the shared package install directory.
	// Packages are host-independent, so this is not namespaced.
	Packages string

	// Host is the host identifier the namespaced paths were built with.
	Host string
}

// New computes the directory layout for the given root and host.
// It performs no I/O; identical inputs always yield identical paths.
func New(root, host string) Registry {
	root = filepath.Clean(root)
	local := filepath.Join(root, ".local")
	ns := "@" + host

	return Registry{
		Root:     root,
		Core:     filepath.Join(root, "core"),
		Modules:  filepath.Join(root, "modules"),
		Local:    local,
		Etc:      filepath.Join(local, ns, "etc"),
		Cache:    filepath.Join(local, ns, "cache"),
		Packages: filepath.Join(local, "packages"),
		Host:     host,
	}
}

// Detect resolves the root and host from the environment and returns the
// resulting Registry. The root is taken from the DOOMDIR environment
// variable when set, falling back to ~/.doom; the host comes from
// os.Hostname.
func Detect() (Registry, error) {
	root := os.Getenv("DOOMDIR")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Registry{}, err
		}
		root = filepath.Join(home, ".doom")
	}

	host, err := os.Hostname()
	if err != nil {
		return Registry{}, err
	}

	return New(root, host), nil
}

// EnsureDirs creates the writable directories (Local, Etc, Cache,
// Packages) if they do not exist. Read-only directories (Core, Modules)
// are expected to ship with the tree and are not created.
func (r Registry) EnsureDirs() error {
	for _, dir := range []string{r.Local, r.Etc, r.Cache, r.Packages} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
