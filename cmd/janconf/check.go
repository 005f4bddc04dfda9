package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-janconf"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	failed := 0
	for _, file := range inputs(args) {
		src, err := readInput(cc.In, file)
		if err != nil {
			return err
		}
		if !checkSource(cc.Out, displayName(file), src, cfg.MainConfig.parseOpts()) {
			failed++
		}
	}
	if failed > 0 {
		theLog.Warn("check failed", "files", failed)
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkSource parses src and reports the outcome on w. It returns whether
// src is valid.
func checkSource(w io.Writer, name string, src []byte, opts []janconf.Option) bool {
	_, err := janconf.Parse(src, opts...)
	if err == nil {
		fmt.Fprintf(w, "%s: ok\n", name)
		return true
	}
	fmt.Fprintln(w, diagnostic(name, err))
	return false
}

// diagnostic renders err as "name:line: message" when it carries a line.
func diagnostic(name string, err error) string {
	var perr *janconf.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("%s:%d: %s", name, perr.Line, perr.Message)
	}
	return fmt.Sprintf("%s: %v", name, err)
}
