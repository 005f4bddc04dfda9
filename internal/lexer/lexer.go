package lexer

import (
	"bufio"
	"io"

	"github.com/KimNorgaard/go-janconf/internal/token"
)

// Lexer splits JanConf source into line tokens. Lines end at "\n"; a "\r"
// right before it is dropped so CRLF files read the same. A "\r" anywhere
// else is line content.
type Lexer struct {
	r    *bufio.Reader
	line int
	err  error
	done bool
}

// New creates and returns a new Lexer.
func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r)}
}

// NextToken reads the next line and returns it as a token. At the end of the
// input it returns a token of type token.EOF. Read errors other than io.EOF
// end the input early and are reported by Err.
func (l *Lexer) NextToken() token.Token {
	if l.done {
		return token.Token{Type: token.EOF, Line: l.line}
	}
	lit, ok := l.readLine()
	if !ok {
		l.done = true
		return token.Token{Type: token.EOF, Line: l.line}
	}
	l.line++
	return Scan(l.line, lit)
}

// Tokens drains the lexer and returns every line token, excluding EOF.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		toks = append(toks, tok)
	}
	return toks
}

// Err returns the first non-EOF error encountered while reading.
func (l *Lexer) Err() error {
	return l.err
}

// Scan classifies a single line.
func Scan(line int, literal string) token.Token {
	indent := token.CountIndent(literal)
	return token.Token{
		Type:    token.Classify(literal, indent),
		Literal: literal,
		Line:    line,
		Indent:  indent,
	}
}

// Dedent strips up to n leading spaces from tok and re-scans it, keeping its
// original line number.
func Dedent(tok token.Token, n int) token.Token {
	return Scan(tok.Line, tok.Literal[min(n, tok.Indent):])
}

func (l *Lexer) readLine() (string, bool) {
	var buf []byte
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				l.err = err
			}
			// A final line without a terminator still counts; an empty
			// remainder after the last terminator does not.
			return string(trimCR(buf)), len(buf) > 0
		}
		if b == '\n' {
			return string(trimCR(buf)), true
		}
		buf = append(buf, b)
	}
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}
