// Package inifile implements a pure Go reader and in-place editor for
// INI-style configuration files. Values are decoded into typed literals
// (ints, floats, bools, none, strings and nested lists, tuples, sets and
// maps) and written back without touching anything but the edited value:
// comments, blank lines, whitespace and untouched keys stay byte-identical.
//
// There is no interpolation, no multi-line value support and keys are case
// sensitive.
//
// # File format
//
//	[section]
//	key = value ; comment
//
// The comment character (default ';') starts a comment anywhere on a line.
// The escape character (default '\') protects the next character, e.g. to
// use a literal ';' or '=' in a key or value. A key is everything before the
// first unescaped '=', so every line holds at most one value. Assignments
// before the first section header and duplicate section headers are
// rejected with ErrSyntax.
//
// Files may start with a UTF-8, UTF-16LE or UTF-16BE byte-order mark. The
// content is converted to UTF-8 for parsing and converted back on save.
//
// # Values
//
// Decode and Encode convert between literals and Values:
//
//	"text", 'text'          string
//	42, -7                  int
//	1.5, 2.0f               float
//	true, false, none       bool, none (any case)
//	[1, 2], (1, 2)          list, tuple
//	{1, 2}, {"a": 1}        set, map
//
// Containers nest up to 65 levels deep. Decode never fails, anything it
// does not recognize is returned as a string holding the original text.
//
// Quoting does not protect the comment character: "a;b" is cut at the ';'
// when the file is read. Config.Set therefore rejects strings containing
// the comment character with ErrInvalidValue. Such text can only be written
// with SetRaw and an escaped comment character, e.g. a\;b, which Decode
// returns as the string a\;b.
//
// # Examples
//
// ## Reading and Writing
//
//	cfg, err := inifile.LoadConfig("server.ini")
//	if err != nil { ... }
//	port, err := cfg.GetInt("server", "port")
//	hosts, err := cfg.Get("server", "hosts")
//	for _, h := range hosts.Items() { ... }
//	if err := cfg.Set("server", "port", inifile.NewInt(9090)); err != nil { ... }
//	if err := cfg.Save(); err != nil { ... }
//
// ## Raw access
//
// Use GetRaw and SetRaw, or load with Options{NoDecode: true}, to control
// the exact text on disk.
//
// ## Free-form sections
//
// With Options{SectionOnly: true} sections are not split into keys, Lines
// returns the comment-free lines of a section instead.
//
// ## Layered configs
//
// Configs combines a system, a per-user and a per-directory file of an
// application, the most specific one wins:
//
//	cfgs := inifile.New("myapp").LoadAll(".")
//	v, err := cfgs.Get("ui", "theme")
//
// ## Error Handling
//
// Use errors.Is to detect common error categories:
//
//	if _, err := cfg.Get("server", "port"); errors.Is(err, inifile.ErrNotFound) {
//		// section or key missing
//	}
//
// ErrRead and ErrWrite wrap the underlying I/O errors, so errors.Is(err,
// os.ErrNotExist) works, too.
//
// # Concurrency
//
// A Config is owned by one goroutine at a time. Files are only open during
// load and save.
package inifile
