package inifile

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
)

// globMatch implements a glob matcher that treats dots as separators, so
// '*' stays within one part of a key and '**' spans several.
func globMatch(pattern, s string) (bool, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return false, err
	}

	return g.Match(s), nil
}

// qualifyKey joins section and key into a fully qualified key name.
func qualifyKey(section, key string) string {
	return section + "." + key
}

// Keys returns a sorted list of all fully qualified keys (section.key).
func (c *Config) Keys() []string {
	keys := make([]string, 0, 32)
	for _, name := range c.sections.order {
		for _, k := range c.sections.byName[name].keys {
			keys = append(keys, qualifyKey(name, k))
		}
	}

	return set.Sorted(keys)
}

// List returns all fully qualified keys with the given prefix. The prefix
// can be empty, then this is identical to Keys().
func (c *Config) List(prefix string) []string {
	return set.SortedFiltered(c.Keys(), func(k string) bool {
		return strings.HasPrefix(k, prefix)
	})
}

// Match returns all fully qualified keys matching the glob pattern, e.g.
// "server.*" or "db-*.host". An invalid pattern matches nothing.
func (c *Config) Match(pattern string) []string {
	return set.SortedFiltered(c.Keys(), func(k string) bool {
		match, err := globMatch(pattern, k)
		if err != nil {
			debug.V(1).Log("invalid glob pattern %q: %s", pattern, err)

			return false
		}

		return match
	})
}
