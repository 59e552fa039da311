package inifile

import (
	"errors"
	"fmt"
)

var (
	// ErrRead indicates a config file could not be read or decoded.
	ErrRead = errors.New("failed to read config")
	// ErrWrite indicates a config file could not be written.
	ErrWrite = errors.New("failed to write config")

	// ErrSyntax indicates a structural problem in the config file. Parsing
	// aborts on the first one.
	ErrSyntax = errors.New("syntax error")
	// ErrDuplicateSection indicates a section header that was already declared.
	ErrDuplicateSection = fmt.Errorf("%w: duplicate section", ErrSyntax)
	// ErrNoSection indicates an assignment (or body line) before the first section header.
	ErrNoSection = fmt.Errorf("%w: outside of any section", ErrSyntax)

	// ErrNotFound indicates a lookup of something that is not in the config.
	ErrNotFound = errors.New("not found")
	// ErrUnknownSection indicates a lookup of an undeclared section.
	ErrUnknownSection = fmt.Errorf("section %w", ErrNotFound)
	// ErrUnknownKey indicates a lookup of an undeclared key.
	ErrUnknownKey = fmt.Errorf("key %w", ErrNotFound)
	// ErrUnknownScope indicates a scope name other than system, user or local.
	ErrUnknownScope = fmt.Errorf("scope %w", ErrNotFound)

	// ErrSectionOnly indicates an operation that does not match the parse mode,
	// e.g. key access on a config loaded with SectionOnly.
	ErrSectionOnly = errors.New("wrong mode for section-only config")
	// ErrInvalidValue indicates a value that can not be written in place.
	ErrInvalidValue = errors.New("invalid value")
	// ErrReadOnly indicates a write to a config that must not be modified.
	ErrReadOnly = errors.New("read-only config")
	// ErrType indicates a value of a different kind than requested.
	ErrType = errors.New("unexpected value type")
)
