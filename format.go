package janconf

import (
	"io"
	"strings"
)

// formatter writes a Document to an output stream.
type formatter struct {
	w      io.Writer
	indent string
	space  string
	depth  int
	lines  int
}

// newFormatter returns a new formatter that writes to w.
func newFormatter(w io.Writer, opts *options) *formatter {
	f := &formatter{w: w, indent: strings.Repeat(" ", opts.indent)}
	if opts.valueSpacing {
		f.space = " "
	}
	return f
}

// format writes the JanConf representation of doc. Lines are separated by
// newlines; there is no trailing newline.
func (f *formatter) format(doc *Document) error {
	return f.writeDocument(doc)
}

func (f *formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *formatter) writeLine(s string) error {
	if f.lines > 0 {
		if err := f.write("\n"); err != nil {
			return err
		}
	}
	f.lines++
	for i := 0; i < f.depth; i++ {
		if err := f.write(f.indent); err != nil {
			return err
		}
	}
	return f.write(s)
}

func (f *formatter) writeDocument(doc *Document) error {
	for _, e := range doc.entries {
		if e.Comment != nil {
			if err := f.writeComment(*e.Comment); err != nil {
				return err
			}
		}

		switch v := e.Value.(type) {
		case Scalar:
			text := v.Escaped()
			if text == "" {
				if err := f.writeLine(e.Key + ":"); err != nil {
					return err
				}
				continue
			}
			if err := f.writeLine(e.Key + ":" + f.space + text); err != nil {
				return err
			}
		case *Document:
			if err := f.writeLine(e.Key + ":"); err != nil {
				return err
			}
			f.depth++
			if err := f.writeDocument(v); err != nil {
				return err
			}
			f.depth--
		}
	}
	return nil
}

func (f *formatter) writeComment(comment string) error {
	for _, line := range strings.Split(comment, "\n") {
		if line == "" {
			if err := f.writeLine("#"); err != nil {
				return err
			}
			continue
		}
		if err := f.writeLine("# " + line); err != nil {
			return err
		}
	}
	return nil
}
