package main

import (
	"bytes"
	"testing"

	"github.com/KimNorgaard/go-janconf"
	"github.com/stretchr/testify/require"
)

func TestWritePath(t *testing.T) {
	doc, err := janconf.ParseString("name: edge\ndb:\n  host: localhost\n  # creds\n  auth:\n    user: app")
	require.NoError(t, err)

	testCases := []struct {
		path     string
		expected string
	}{
		{path: "name", expected: "edge\n"},
		{path: "db.host", expected: "localhost\n"},
		{path: "db.auth.user", expected: "app\n"},
		{path: "db", expected: "host: localhost\n# creds\nauth:\n  user: app\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writePath(&buf, doc, tc.path))
			require.Equal(t, tc.expected, buf.String())
		})
	}

	for _, path := range []string{"missing", "db.missing", "name.sub"} {
		t.Run(path, func(t *testing.T) {
			var buf bytes.Buffer
			require.Error(t, writePath(&buf, doc, path))
			require.Empty(t, buf.String())
		})
	}
}
