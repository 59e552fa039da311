package inifile

import "slices"

// Section is a view of one section of a Config. It shares the config's
// state, changes made through it are visible in the config and vice versa.
type Section struct {
	cfg *Config
	sec *section
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.sec.name
}

// Keys returns the keys in the order they are first declared.
func (s *Section) Keys() []string {
	return slices.Clone(s.sec.keys)
}

// Contains returns true if the key is declared in this section.
func (s *Section) Contains(key string) bool {
	_, found := s.sec.refs[key]

	return found
}

// Get returns the decoded value of the key.
func (s *Section) Get(key string) (Value, error) {
	return s.cfg.Get(s.sec.name, key)
}

// GetRaw returns the text of the key's value.
func (s *Section) GetRaw(key string) (string, error) {
	return s.cfg.GetRaw(s.sec.name, key)
}

// Set replaces the value of the key.
func (s *Section) Set(key string, v Value) error {
	return s.cfg.Set(s.sec.name, key, v)
}

// SetRaw replaces the value of the key with text.
func (s *Section) SetRaw(key, text string) error {
	return s.cfg.SetRaw(s.sec.name, key, text)
}

// Lines returns the body lines of the section in section-only mode.
func (s *Section) Lines() ([]string, error) {
	return s.cfg.Lines(s.sec.name)
}
