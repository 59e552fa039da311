package inifile

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gopasspw/gopass/pkg/debug"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies the on-disk text encoding of a config file as detected
// from its byte-order mark. All parsing happens on UTF-8, the encoding is only
// used to convert on load and save.
type Encoding int

const (
	// UTF8 is plain UTF-8 without a byte-order mark. Files without any
	// mark are treated as UTF-8.
	UTF8 Encoding = iota
	// UTF8BOM is UTF-8 prefixed with EF BB BF.
	UTF8BOM
	// UTF16LE is little-endian UTF-16 prefixed with FF FE.
	UTF16LE
	// UTF16BE is big-endian UTF-16 prefixed with FE FF.
	UTF16BE
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8 (bom)"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

func (e Encoding) bom() []byte {
	switch e {
	case UTF8BOM:
		return bomUTF8
	case UTF16LE:
		return bomUTF16LE
	case UTF16BE:
		return bomUTF16BE
	default:
		return nil
	}
}

func (e Encoding) utf16() *unicode.Endianness {
	var end unicode.Endianness
	switch e {
	case UTF16LE:
		end = unicode.LittleEndian
	case UTF16BE:
		end = unicode.BigEndian
	default:
		return nil
	}

	return &end
}

// detectEncoding looks at the byte-order mark, if any. The marks are
// mutually exclusive prefixes so the order of the checks does not matter.
func detectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// normalize strips the byte-order mark and converts the content to UTF-8.
// Once the mark is detected there is exactly one decode attempt.
func normalize(data []byte) (string, Encoding, error) {
	enc := detectEncoding(data)
	body := data[len(enc.bom()):]

	end := enc.utf16()
	if end == nil {
		return string(body), enc, nil
	}

	if len(body)%2 != 0 {
		return "", enc, fmt.Errorf("%w: truncated %s content (%d bytes)", ErrRead, enc, len(body))
	}

	codec := unicode.UTF16(*end, unicode.IgnoreBOM)
	out, err := codec.NewDecoder().Bytes(body)
	if err != nil {
		return "", enc, fmt.Errorf("%w: invalid %s content: %w", ErrRead, enc, err)
	}

	// the decoder replaces unpaired surrogates with U+FFFD. Such a file could
	// not be saved unchanged, so it's rejected.
	back, err := codec.NewEncoder().Bytes(out)
	if err != nil || !bytes.Equal(back, body) {
		return "", enc, fmt.Errorf("%w: invalid %s content", ErrRead, enc)
	}

	debug.V(2).Log("converted %d bytes of %s to %d bytes of utf-8", len(body), enc, len(out))

	return string(out), enc, nil
}

// denormalize converts canonical UTF-8 text back to the given encoding,
// including its byte-order mark.
func denormalize(text string, enc Encoding) ([]byte, error) {
	end := enc.utf16()
	if end == nil {
		return append(append([]byte{}, enc.bom()...), text...), nil
	}

	out, err := unicode.UTF16(*end, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: can not encode as %s: %w", ErrWrite, enc, err)
	}

	return append(append([]byte{}, enc.bom()...), out...), nil
}

// splitLines splits text into line records. Each record keeps its trailing
// terminator so that joining all records reproduces the input exactly.
func splitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)

			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}

	return lines
}
