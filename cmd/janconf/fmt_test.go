package main

import (
	"bytes"
	"testing"

	"github.com/KimNorgaard/go-janconf"
	"github.com/stretchr/testify/require"
)

func TestFormatSource(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		cfg      FmtConfig
		expected string
	}{
		{
			name:     "defaults",
			src:      "#c\na:1\ng:\n      b:   2\n",
			expected: "# c\na: 1\ng:\n  b: 2\n",
		},
		{
			name:     "indent and no space",
			src:      "a: 1\ng:\n  b: 2",
			cfg:      FmtConfig{Indent: 4, NoSpace: true},
			expected: "a:1\ng:\n    b:2\n",
		},
		{
			name:     "empty document",
			src:      "\n# only a comment\n",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mainCfg := &MainConfig{}
			out, err := formatSource([]byte(tc.src), mainCfg.parseOpts(), tc.cfg.encOpts())
			require.NoError(t, err)
			require.Equal(t, tc.expected, string(out))
		})
	}

	t.Run("parse error", func(t *testing.T) {
		_, err := formatSource([]byte("oops"), nil, nil)
		require.ErrorIs(t, err, janconf.ErrMalformedLine)
	})

	t.Run("max depth", func(t *testing.T) {
		mainCfg := &MainConfig{MaxDepth: 1}
		_, err := formatSource([]byte("a:\n  b:\n    c: 1"), mainCfg.parseOpts(), nil)
		require.ErrorIs(t, err, janconf.ErrMaxDepth)
	})
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	err := writeDiff(&buf, "app.jconf", "a:1\nb: 2\n", "a: 1\nb: 2\n", false)
	require.NoError(t, err)
	require.Equal(t, "--- app.jconf\n+++ app.jconf (formatted)\n-a:1\n+a: 1\n b: 2\n", buf.String())

	buf.Reset()
	require.NoError(t, writeDiff(&buf, "same", "a: 1\n", "a: 1\n", false))
	require.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, writeDiff(&buf, "blank", "a: 1\n\nb: 2\n", "a: 1\nb: 2\n", false))
	require.Equal(t, "--- blank\n+++ blank (formatted)\n a: 1\n-\n b: 2\n", buf.String())
}

func TestColorOutput(t *testing.T) {
	require.False(t, colorOutput(&bytes.Buffer{}))
}
