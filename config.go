package inifile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gopasspw/gopass/pkg/debug"
)

// Options control how a config file is parsed and accessed.
//
// Fields:
// - CommentChar: Starts a comment that runs to the end of the line (default ';')
// - EscapeChar: Protects the following character from interpretation (default '\')
// - SectionOnly: Keep the body lines of each section instead of key-value pairs
// - NoDecode: Get and Set pass text through verbatim instead of decoding literals
// - NoWrites: Save does not touch the disk (e.g. for tests)
type Options struct {
	CommentChar rune
	EscapeChar  rune
	SectionOnly bool
	NoDecode    bool
	NoWrites    bool
}

// DefaultOptions returns the options used by LoadConfig.
func DefaultOptions() Options {
	return Options{
		CommentChar: ';',
		EscapeChar:  '\\',
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CommentChar == 0 {
		o.CommentChar = d.CommentChar
	}
	if o.EscapeChar == 0 {
		o.EscapeChar = d.EscapeChar
	}

	return o
}

// Config is a single INI file.
//
// Config keeps every line of the file as it was read. Values are not copied
// out of the lines, each key maps to a ValueRef that points at the value's
// byte range in its line. Set rewrites exactly that range and Save writes
// the lines back, so comments, blank lines, whitespace and all untouched
// values remain byte-identical.
//
// Fields:
// - path: File path, empty for configs parsed from a reader
// - opts: Parse and access options
// - enc: Encoding detected from the byte-order mark, restored on Save
// - doc: The line records
// - sections: Section table with the refs into doc
// - saved: Text as last loaded or saved (for Dirty and Diff)
//
// Note: Config is not thread-safe. Callers must provide synchronization if
// one Config is shared between goroutines.
//
// Typical Usage:
//
//	cfg, err := LoadConfig("server.ini")
//	if err != nil { ... }
//	port, err := cfg.GetInt("server", "port")
//	if err := cfg.Set("server", "port", NewInt(9090)); err != nil { ... }
//	if err := cfg.Save(); err != nil { ... }
type Config struct {
	path     string
	opts     Options
	enc      Encoding
	doc      *document
	sections *sectionTable
	saved    string
}

// LoadConfig loads the INI file at fn using DefaultOptions.
func LoadConfig(fn string) (*Config, error) {
	return LoadConfigWithOptions(fn, DefaultOptions())
}

// LoadConfigWithOptions loads the INI file at fn. The file is only open while
// it's being read.
//
// Errors:
// - ErrRead if the file can not be read or its content can not be decoded
// - ErrSyntax (ErrDuplicateSection, ErrNoSection) for structural problems
func LoadConfigWithOptions(fn string, opts Options) (*Config, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrRead, fn, err)
	}

	c, err := parseBytes(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	c.path = fn

	debug.V(1).Log("loaded %s (%s, %d lines, %d sections)", fn, c.enc, len(c.doc.lines), len(c.sections.order))

	return c, nil
}

// ParseConfig parses an INI file from r. The resulting config has no path,
// use SaveAs to persist it.
func ParseConfig(r io.Reader, opts Options) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return parseBytes(data, opts)
}

func parseBytes(data []byte, opts Options) (*Config, error) {
	opts = opts.withDefaults()

	text, enc, err := normalize(data)
	if err != nil {
		return nil, err
	}

	doc, tbl, err := parseConfig(splitLines(text), opts)
	if err != nil {
		return nil, err
	}

	return &Config{
		opts:     opts,
		enc:      enc,
		doc:      doc,
		sections: tbl,
		saved:    text,
	}, nil
}

// Path returns the file path of the config, if any.
func (c *Config) Path() string {
	return c.path
}

// Encoding returns the encoding detected when loading the file.
func (c *Config) Encoding() Encoding {
	return c.enc
}

// Sections returns the section names in the order they are declared.
func (c *Config) Sections() []string {
	return slices.Clone(c.sections.order)
}

// HasSection returns true if the section is declared.
func (c *Config) HasSection(name string) bool {
	_, found := c.sections.byName[name]

	return found
}

// Section returns a view of the named section.
func (c *Config) Section(name string) (*Section, error) {
	s, err := c.lookupSection(name)
	if err != nil {
		return nil, err
	}

	return &Section{cfg: c, sec: s}, nil
}

// Contains returns true if the key is declared in the section.
func (c *Config) Contains(section, key string) bool {
	s, found := c.sections.byName[section]
	if !found {
		return false
	}
	_, found = s.refs[key]

	return found
}

// Get returns the decoded value of the key. With NoDecode the raw text is
// returned as a String value.
//
// Errors:
// - ErrUnknownSection, ErrUnknownKey (both match ErrNotFound)
// - ErrSectionOnly if the config was parsed with SectionOnly
func (c *Config) Get(section, key string) (Value, error) {
	r, err := c.lookupRef(section, key)
	if err != nil {
		return Value{}, err
	}

	if c.opts.NoDecode {
		return NewString(r.Read()), nil
	}

	return Decode(r.Read()), nil
}

// GetRaw returns the text of the key's value exactly as it is in the file.
func (c *Config) GetRaw(section, key string) (string, error) {
	r, err := c.lookupRef(section, key)
	if err != nil {
		return "", err
	}

	return r.Read(), nil
}

// GetString returns the value of the key if it's a string.
func (c *Config) GetString(section, key string) (string, error) {
	v, err := c.Get(section, key)
	if err != nil {
		return "", err
	}
	s, ok := v.Str()
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %s, not string", ErrType, section, key, v.Kind())
	}

	return s, nil
}

// GetInt returns the value of the key if it's an int.
func (c *Config) GetInt(section, key string) (int64, error) {
	v, err := c.Get(section, key)
	if err != nil {
		return 0, err
	}
	i, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is %s, not int", ErrType, section, key, v.Kind())
	}

	return i, nil
}

// GetFloat returns the value of the key if it's a float or an int.
func (c *Config) GetFloat(section, key string) (float64, error) {
	v, err := c.Get(section, key)
	if err != nil {
		return 0, err
	}
	f, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is %s, not float", ErrType, section, key, v.Kind())
	}

	return f, nil
}

// GetBool returns the value of the key if it's a bool.
func (c *Config) GetBool(section, key string) (bool, error) {
	v, err := c.Get(section, key)
	if err != nil {
		return false, err
	}
	b, ok := v.Bool()
	if !ok {
		return false, fmt.Errorf("%w: %s.%s is %s, not bool", ErrType, section, key, v.Kind())
	}

	return b, nil
}

// Set replaces the value of an existing key with the encoded v. Only the
// byte range of the old value changes, a trailing comment on the same line
// is kept. With NoDecode a String value is written verbatim.
//
// Quotes do not protect the comment character, so a String (or a container
// holding one) that contains it can not be stored and fails with
// ErrInvalidValue. Use SetRaw with an escaped comment character instead.
//
// Set does not write to disk, call Save for that.
//
// Errors:
// - ErrUnknownSection, ErrUnknownKey (both match ErrNotFound)
// - ErrSectionOnly if the config was parsed with SectionOnly
// - ErrInvalidValue if the text can not be stored in place
func (c *Config) Set(section, key string, v Value) error {
	text := Encode(v)
	if c.opts.NoDecode {
		if s, ok := v.Str(); ok {
			text = s
		}
	}

	return c.SetRaw(section, key, text)
}

// SetRaw replaces the value of an existing key with text, verbatim.
func (c *Config) SetRaw(section, key, text string) error {
	r, err := c.lookupRef(section, key)
	if err != nil {
		return err
	}

	if err := c.checkValue(text); err != nil {
		return fmt.Errorf("%s.%s: %w", section, key, err)
	}

	r.Write(text)
	debug.V(3).Log("set %s.%s to %q on line %d", section, key, text, r.Line())

	return nil
}

// Lines returns the body lines of a section of a config parsed with
// SectionOnly.
func (c *Config) Lines(section string) ([]string, error) {
	s, err := c.lookupSection(section)
	if err != nil {
		return nil, err
	}
	if !c.opts.SectionOnly {
		return nil, fmt.Errorf("%w: lines of %q", ErrSectionOnly, section)
	}

	return slices.Clone(s.body), nil
}

// checkValue makes sure text reads back as the same span after a reload:
// it must stay on one line, must not start a comment and must not end in a
// dangling escape that would swallow the following character.
func (c *Config) checkValue(text string) error {
	escaped := false
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r':
			return fmt.Errorf("%w: line break in %q", ErrInvalidValue, text)
		case escaped:
			escaped = false
		case r == c.opts.EscapeChar:
			escaped = true
		case r == c.opts.CommentChar:
			return fmt.Errorf("%w: unescaped comment character %q in %q", ErrInvalidValue, c.opts.CommentChar, text)
		}
	}
	if escaped {
		return fmt.Errorf("%w: dangling escape character in %q", ErrInvalidValue, text)
	}

	return nil
}

func (c *Config) lookupSection(name string) (*section, error) {
	s, found := c.sections.byName[name]
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}

	return s, nil
}

func (c *Config) lookupRef(section, key string) (*ValueRef, error) {
	s, err := c.lookupSection(section)
	if err != nil {
		return nil, err
	}
	if c.opts.SectionOnly {
		return nil, fmt.Errorf("%w: key %q in %q", ErrSectionOnly, key, section)
	}

	r, found := s.refs[key]
	if !found {
		return nil, fmt.Errorf("%w: %q in section %q", ErrUnknownKey, key, section)
	}

	return r, nil
}

// String returns the current content of the file in UTF-8.
func (c *Config) String() string {
	return c.doc.String()
}

// Bytes returns the current content of the file as it would be saved,
// i.e. in the original encoding.
func (c *Config) Bytes() ([]byte, error) {
	return denormalize(c.doc.String(), c.enc)
}

// WriteTo writes the current content in the original encoding to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	data, err := c.Bytes()
	if err != nil {
		return 0, err
	}

	return io.Copy(w, bytes.NewReader(data))
}

// Save writes all lines back to the file they were loaded from. The lines
// are written in order without any reformatting, in the encoding the file
// had when it was loaded.
//
// Saving a config without a path or with NoWrites is a no-op. A failed save
// leaves the in-memory state as it is, so it can be retried.
func (c *Config) Save() error {
	if c.opts.NoWrites || c.path == "" {
		debug.V(3).Log("not writing changes to disk (noWrites %t, path %q)", c.opts.NoWrites, c.path)

		return nil
	}

	return c.flush(c.path)
}

// SaveAs writes the config to fn and uses fn for later saves.
func (c *Config) SaveAs(fn string) error {
	if err := c.flush(fn); err != nil {
		return err
	}
	c.path = fn

	return nil
}

func (c *Config) flush(fn string) error {
	text := c.doc.String()
	data, err := denormalize(text, c.enc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fn), 0o700); err != nil {
		return fmt.Errorf("%w: failed to create directory %q for %q: %w", ErrWrite, filepath.Dir(fn), fn, err)
	}

	if err := os.WriteFile(fn, data, 0o600); err != nil {
		return fmt.Errorf("%w to %s: %w", ErrWrite, fn, err)
	}
	c.saved = text

	debug.V(1).Log("wrote config to %s", fn)

	return nil
}
