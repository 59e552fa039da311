package inifile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	in := `; head
[server]
port = 8080 ; listen port
hostname   =   "x"
port = 8081

[db]
url = a
weird\=key = 1
`
	cfg := parseString(t, in, DefaultOptions())

	var sb strings.Builder
	require.NoError(t, cfg.Format(&sb))
	assert.Equal(t, `[server]
port     = 8081
hostname = "x"

[db]
url        = a
weird\=key = 1
`, sb.String())

	// the document itself is untouched
	assert.Equal(t, in, cfg.String())

	// the formatted output parses to the same values
	re := parseString(t, sb.String(), DefaultOptions())
	assert.Equal(t, cfg.Keys(), re.Keys())
	for _, k := range []struct{ s, k string }{{"server", "port"}, {"server", "hostname"}, {"db", "url"}, {"db", "weird=key"}} {
		a, err := cfg.Get(k.s, k.k)
		require.NoError(t, err)
		b, err := re.Get(k.s, k.k)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), k)
	}
}

func TestFormatSectionOnly(t *testing.T) {
	t.Parallel()

	cfg := parseString(t, "[a]\n  one ; c\ntwo\n[b]\n", Options{SectionOnly: true})

	var sb strings.Builder
	require.NoError(t, cfg.Format(&sb))
	assert.Equal(t, "[a]\none\ntwo\n\n[b]\n", sb.String())
}
