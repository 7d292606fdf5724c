package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jhirn/doom-emacs/internal/autoload"
	"github.com/jhirn/doom-emacs/internal/location"
	"github.com/jhirn/doom-emacs/internal/mode"
)

// Load resolves settings for the given layout: defaults, overlaid with
// the TOML file at File(loc) when present, overlaid with environment
// variables. A missing settings file is not an error.
func Load(loc location.Registry) (Settings, error) {
	return LoadFile(loc, File(loc))
}

// LoadFile is Load with an explicit settings file path.
func LoadFile(loc location.Registry, path string) (Settings, error) {
	s := Defaults(loc)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No settings file; defaults plus environment apply.
	case err != nil:
		return s, err
	default:
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, &ParseError{Path: path, Err: err}
		}
	}

	applyEnv(&s)
	return s, nil
}

// BuildRules registers every declared autoload rule on the table,
// resolving mode names through the registry. A pattern that does not
// compile fails fast with the dispatcher's *PatternError; declarations
// with an empty pattern or no modes are skipped, mirroring the rule
// table's inert-rule invariant.
func BuildRules(table *autoload.Table, modes *mode.Registry, rules []AutoloadRule) error {
	for _, r := range rules {
		if r.Pattern == "" || len(r.Modes) == 0 {
			continue
		}
		for _, name := range r.Modes {
			if err := table.Register(r.Pattern, modes.Action(name)); err != nil {
				return err
			}
		}
	}
	return nil
}
