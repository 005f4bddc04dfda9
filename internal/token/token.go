package token

import "strings"

// Type is the type of a token.
type Type string

// Token represents one classified source line.
type Token struct {
	Type    Type
	Literal string // the raw line, without its line terminator
	Line    int    // 1-based line number in the original source
	Indent  int    // count of leading space characters
}

const (
	ILLEGAL Type = "ILLEGAL" // a zero-indent line with no ':' separator
	EOF     Type = "EOF"     // end of input
	BLANK   Type = "BLANK"   // empty or whitespace-only line
	COMMENT Type = "COMMENT" // # a comment
	ENTRY   Type = "ENTRY"   // key: value
)

// Classify determines the type of a line from its content and indentation.
// Lines with a non-zero indent are classified by what follows the indent,
// because they are re-scanned once their group strips it.
func Classify(literal string, indent int) Type {
	rest := literal[indent:]
	switch {
	case strings.TrimSpace(rest) == "":
		return BLANK
	case strings.HasPrefix(rest, "#"):
		return COMMENT
	case indent > 0 || strings.Contains(rest, ":"):
		return ENTRY
	default:
		return ILLEGAL
	}
}

// CountIndent returns the number of leading space characters in s. Tabs are
// not indentation.
func CountIndent(s string) int {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// CommentText returns the trimmed text following the '#' of a comment line.
func (t Token) CommentText() string {
	return strings.TrimSpace(strings.TrimPrefix(t.Literal[t.Indent:], "#"))
}

// Split divides an entry line at its first ':' into the key, taken verbatim
// after the indentation, and the trimmed value.
func (t Token) Split() (key, value string, ok bool) {
	key, value, ok = strings.Cut(t.Literal[t.Indent:], ":")
	return key, strings.TrimSpace(value), ok
}
