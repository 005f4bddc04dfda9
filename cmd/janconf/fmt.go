package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KimNorgaard/go-janconf"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func fmtMain(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("%w: -i must be at least 1, got %d", cli.ErrUsage, cfg.Indent)
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: only one of -w, -d may be specified", cli.ErrUsage)
	}
	files := inputs(args)
	if cfg.Write && files[0] == "-" {
		return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
	}

	colored := colorOutput(cc.Out)
	for _, file := range files {
		src, err := readInput(cc.In, file)
		if err != nil {
			return err
		}
		out, err := formatSource(src, cfg.MainConfig.parseOpts(), cfg.encOpts())
		if err != nil {
			return fmt.Errorf("error formatting %s: %w", displayName(file), err)
		}

		switch {
		case cfg.Diff:
			if err := writeDiff(cc.Out, displayName(file), string(src), string(out), colored); err != nil {
				return err
			}
		case cfg.Write:
			if bytes.Equal(src, out) {
				continue
			}
			if err := os.WriteFile(file, out, 0o644); err != nil {
				return err
			}
			theLog.Info("formatted", "file", file)
		default:
			if _, err := cc.Out.Write(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatSource parses src and serializes it again. Non-empty output ends with
// a newline, as files on disk do.
func formatSource(src []byte, parseOpts, encOpts []janconf.Option) ([]byte, error) {
	doc, err := janconf.Parse(src, parseOpts...)
	if err != nil {
		return nil, err
	}
	out, err := janconf.Marshal(doc, encOpts...)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		out = append(out, '\n')
	}
	return out, nil
}

func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeDiff prints a line diff from a to b. Nothing is printed when they are
// equal.
func writeDiff(w io.Writer, name, a, b string, colored bool) error {
	if a == b {
		return nil
	}
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	hdr := color.New(color.Bold)
	for _, c := range []*color.Color{del, ins, hdr} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	sb.WriteString(hdr.Sprintf("--- %s\n+++ %s (formatted)\n", name, name))
	for _, d := range diffs {
		prefix, c := " ", (*color.Color)(nil)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, c = "-", del
		case diffmatchpatch.DiffInsert:
			prefix, c = "+", ins
		}
		for _, line := range splitLines(d.Text) {
			if c != nil {
				line = c.Sprint(prefix + line)
			} else {
				line = prefix + line
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
