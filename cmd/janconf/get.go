package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-janconf"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted key path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	for _, file := range inputs(args[1:]) {
		src, err := readInput(cc.In, file)
		if err != nil {
			return err
		}
		doc, err := janconf.Parse(src, cfg.MainConfig.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", displayName(file), err)
		}
		if err := writePath(cc.Out, doc, path); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", displayName(file), path, err)
		}
	}
	return nil
}

// writePath prints the entry at a dotted path. Scalars are printed as text,
// groups as a formatted document.
func writePath(w io.Writer, doc *janconf.Document, path string) error {
	e, ok := doc.Path(strings.Split(path, ".")...)
	if !ok {
		return fmt.Errorf("%q not found", path)
	}
	var out string
	switch v := e.Value.(type) {
	case janconf.Scalar:
		out = v.Escaped()
	case *janconf.Document:
		out = v.String()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
