//go:build go1.18

package janconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KimNorgaard/go-janconf"
	"github.com/stretchr/testify/require"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the golden inputs.
	seedFiles, err := filepath.Glob("testdata/*.jconf")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}

	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	f.Add([]byte(""))
	f.Add([]byte("k:"))
	f.Add([]byte("k: a:b:c"))
	f.Add([]byte("# c\ng:\n  # d\n    x: 1\n  y:\n"))
	f.Add([]byte("g:\r\n\t: x\r\n  :\r"))

	f.Fuzz(func(t *testing.T, originalData []byte) {
		doc, err := janconf.Parse(originalData)
		if err != nil {
			// Invalid input is expected; the fuzzer is looking for panics.
			return
		}

		// Output of the serializer must always parse back to the same
		// document.
		first, err := janconf.Marshal(doc)
		require.NoError(t, err, "Marshal failed for a successfully parsed document")

		reparsed, err := janconf.Parse(first)
		require.NoError(t, err, "Parse failed on our own output:\n%s", first)
		require.True(t, doc.Equal(reparsed), "document changed after a round trip:\n%s", first)

		second, err := janconf.Marshal(reparsed)
		require.NoError(t, err)
		require.Equal(t, string(first), string(second))
	})
}
