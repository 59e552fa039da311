package inifile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gopass/pkg/appdir"
	"github.com/gopasspw/gopass/pkg/debug"
	"github.com/gopasspw/gopass/pkg/set"
)

// Scope names accepted by GetFrom and SetIn.
const (
	ScopeSystem = "system"
	ScopeUser   = "user"
	ScopeLocal  = "local"
)

// Configs layers the INI files of an application from different scopes.
//
// Scope Priority (highest to lowest):
// 1. Local config (<workdir>/<LocalConfig>)
// 2. User config (<user config dir>/<Name>/<UserConfig>)
// 3. System config (SystemConfig)
//
// Every scope is a regular Config. Lookups go through the scopes in order
// of priority, writes go to exactly one scope and are saved right away.
// Since values are rewritten in place, a key can only be set in a scope
// whose file already declares it.
//
// Usage:
//
//	cfgs := New("myapp")
//	cfgs.LoadAll(".")
//	port, err := cfgs.Get("server", "port")
//	err = cfgs.SetIn(ScopeUser, "server", "port", NewInt(9090))
type Configs struct {
	system *Config
	user   *Config
	local  *Config

	workdir string

	Name         string
	SystemConfig string
	UserConfig   string
	LocalConfig  string
	Options      Options
}

// New creates a Configs for the application name with the default file
// locations. The returned instance is not yet loaded, call LoadAll.
//
// Default settings:
// - SystemConfig: /etc/<name>/config.ini
// - UserConfig: config.ini (below the per-user config directory)
// - LocalConfig: .<name>.ini (relative to the workdir)
// - Options: DefaultOptions()
func New(name string) *Configs {
	return &Configs{
		Name:         name,
		SystemConfig: filepath.Join("/etc", name, "config.ini"),
		UserConfig:   "config.ini",
		LocalConfig:  "." + name + ".ini",
		Options:      DefaultOptions(),
	}
}

// String implements fmt.Stringer for debugging.
func (cs *Configs) String() string {
	return fmt.Sprintf("Configs{Name: %s - Workdir: %s - System: %s - User: %s - Local: %s}", cs.Name, cs.workdir, cs.SystemConfig, cs.UserConfigPath(), cs.LocalConfig)
}

// UserConfigPath returns the location of the per-user config file,
// e.g. $XDG_CONFIG_HOME/<name>/config.ini.
func (cs *Configs) UserConfigPath() string {
	return UserConfigPath(cs.Name, cs.UserConfig)
}

// UserConfigPath returns the location of the file fn in the per-user config
// directory of the application name.
func UserConfigPath(name, fn string) string {
	return filepath.Join(appdir.New(name).UserConfig(), fn)
}

// LoadUserConfig loads the file fn from the per-user config directory of the
// application name.
func LoadUserConfig(name, fn string, opts Options) (*Config, error) {
	return LoadConfigWithOptions(UserConfigPath(name, fn), opts)
}

// LoadAll loads the configs of all scopes.
//
// Behavior:
// - Missing files are silently ignored
// - Files that fail to parse are logged and ignored
// - The system config is always read-only
// - workdir is optional; if empty, the local config is not loaded
func (cs *Configs) LoadAll(workdir string) *Configs {
	cs.workdir = workdir

	debug.Log("Loading configs for %s", cs.Name)

	sysOpts := cs.Options
	sysOpts.NoWrites = true
	cs.system = cs.load(ScopeSystem, cs.SystemConfig, sysOpts)
	cs.user = cs.load(ScopeUser, cs.UserConfigPath(), cs.Options)

	cs.local = nil
	if workdir != "" {
		cs.local = cs.load(ScopeLocal, filepath.Join(workdir, cs.LocalConfig), cs.Options)
	}

	return cs
}

// Reload reloads all configuration files from disk, using the workdir of the
// last LoadAll call.
func (cs *Configs) Reload() {
	cs.LoadAll(cs.workdir)
}

func (cs *Configs) load(scope, fn string, opts Options) *Config {
	if fn == "" {
		return nil
	}

	c, err := LoadConfigWithOptions(fn, opts)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			debug.V(3).Log("[%s] no %s config at %s", cs.Name, scope, fn)
		} else {
			debug.V(1).Log("[%s] failed to load %s config from %s: %s", cs.Name, scope, fn, err)
		}

		return nil
	}

	debug.V(1).Log("[%s] loaded %s config from %s", cs.Name, scope, fn)

	return c
}

// scopes returns the loaded configs by descending priority.
func (cs *Configs) scopes() []*Config {
	out := make([]*Config, 0, 3)
	for _, c := range []*Config{cs.local, cs.user, cs.system} {
		if c != nil {
			out = append(out, c)
		}
	}

	return out
}

func (cs *Configs) scope(name string) (*Config, error) {
	var c *Config
	switch strings.ToLower(name) {
	case ScopeSystem:
		c = cs.system
	case ScopeUser:
		c = cs.user
	case ScopeLocal:
		c = cs.local
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, name)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no %s config loaded", ErrNotFound, name)
	}

	return c, nil
}

// Get returns the value of the key from the first scope that declares it.
func (cs *Configs) Get(section, key string) (Value, error) {
	for _, c := range cs.scopes() {
		if c.Contains(section, key) {
			return c.Get(section, key)
		}
	}

	debug.V(3).Log("[%s] no value for %s found", cs.Name, qualifyKey(section, key))

	return Value{}, fmt.Errorf("%w: %q in section %q", ErrUnknownKey, key, section)
}

// GetFrom returns the value of the key from the given scope only.
func (cs *Configs) GetFrom(scope, section, key string) (Value, error) {
	c, err := cs.scope(scope)
	if err != nil {
		return Value{}, err
	}

	return c.Get(section, key)
}

// IsSet returns true if any scope declares the key.
func (cs *Configs) IsSet(section, key string) bool {
	for _, c := range cs.scopes() {
		if c.Contains(section, key) {
			return true
		}
	}

	return false
}

// SetIn replaces the value of the key in the given scope and saves that
// scope's file. The system scope is never written.
func (cs *Configs) SetIn(scope, section, key string, v Value) error {
	if strings.EqualFold(scope, ScopeSystem) {
		return fmt.Errorf("%w: %s config", ErrReadOnly, ScopeSystem)
	}

	c, err := cs.scope(scope)
	if err != nil {
		return err
	}

	if err := c.Set(section, key, v); err != nil {
		return err
	}

	return c.Save()
}

// Keys returns a sorted list of the fully qualified keys of all scopes.
func (cs *Configs) Keys() []string {
	keys := make([]string, 0, 64)
	for _, c := range cs.scopes() {
		keys = append(keys, c.Keys()...)
	}

	return set.Sorted(keys)
}

// ListSections returns a sorted list of the sections of all scopes.
func (cs *Configs) ListSections() []string {
	sections := make([]string, 0, 16)
	for _, c := range cs.scopes() {
		sections = append(sections, c.Sections()...)
	}

	return set.Sorted(sections)
}
