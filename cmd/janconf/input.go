package main

import (
	"fmt"
	"io"
	"os"
)

// inputs returns the file arguments, or "-" for stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = stdin
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
