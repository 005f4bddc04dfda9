package parser

import (
	"errors"
	"fmt"

	"github.com/KimNorgaard/go-janconf/internal/ast"
	"github.com/KimNorgaard/go-janconf/internal/lexer"
	"github.com/KimNorgaard/go-janconf/internal/token"
)

// DefaultMaxDepth is the group nesting limit used unless SetMaxDepth is called.
const DefaultMaxDepth = 1000

var (
	// ErrMalformedLine reports a line that does not fit the grammar.
	ErrMalformedLine = errors.New("malformed line")
	// ErrMaxDepth reports groups nested deeper than the configured limit.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// Error is a parse failure at a specific source line.
type Error struct {
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Parser holds the state of the parser.
type Parser struct {
	l        *lexer.Lexer
	maxDepth int
}

// New creates a new parser.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth limits how deeply groups may nest.
func (p *Parser) SetMaxDepth(n int) {
	p.maxDepth = n
}

// Parse reads every line from the lexer and builds the document tree. The
// first structural error aborts the parse; no partial document is returned.
func (p *Parser) Parse() (*ast.Document, error) {
	toks := p.l.Tokens()
	if err := p.l.Err(); err != nil {
		return nil, err
	}
	return p.parseDocument(toks, 0)
}

// group tracks a key whose value is an indented block. It is created when
// lookahead sees indentation after the key and opened by the first indented
// line. The first indented non-comment line fixes the base indent stripped
// from every following sub-line.
type group struct {
	key     token.Token
	name    string
	comment *ast.Comment
	open    bool
	base    int
	lines   []token.Token
}

func (p *Parser) parseDocument(toks []token.Token, depth int) (*ast.Document, error) {
	doc := &ast.Document{}
	var (
		pending *ast.Comment
		cur     *group
	)

	for i, tok := range toks {
		switch {
		case tok.Type == token.BLANK:
			continue
		case tok.Indent > 0 && cur != nil:
			if !cur.open {
				cur.open = true
				cur.comment = pending
				pending = nil
			}
			strip := cur.base
			switch {
			case strip > 0:
			case tok.Type == token.COMMENT:
				strip = tok.Indent
			default:
				cur.base = tok.Indent
				strip = tok.Indent
			}
			cur.lines = append(cur.lines, lexer.Dedent(tok, strip))
			continue
		case tok.Type == token.COMMENT:
			pending = appendComment(pending, tok)
			continue
		case tok.Indent > 0:
			return nil, &Error{Line: tok.Line, Msg: "indented line has no parent key", Err: ErrMalformedLine}
		}

		if cur != nil {
			if err := p.closeGroup(doc, cur, depth); err != nil {
				return nil, err
			}
			cur = nil
		}

		if tok.Type == token.ILLEGAL {
			return nil, &Error{Line: tok.Line, Msg: fmt.Sprintf("missing ':' in %q", tok.Literal), Err: ErrMalformedLine}
		}

		key, value, _ := tok.Split()
		if opensGroup(toks[i+1:]) {
			// The inline value, if any, is dropped and the pending comment
			// waits for the first indented line.
			cur = &group{key: tok, name: key}
			continue
		}
		doc.Pairs = append(doc.Pairs, &ast.Pair{
			Token:   tok,
			Key:     key,
			Value:   &ast.Scalar{Token: tok, Value: value},
			Comment: pending,
		})
		pending = nil
	}

	if cur != nil {
		if err := p.closeGroup(doc, cur, depth); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *Parser) closeGroup(doc *ast.Document, g *group, depth int) error {
	if depth+1 > p.maxDepth {
		return &Error{Line: g.key.Line, Msg: fmt.Sprintf("group %q nests deeper than %d levels", g.name, p.maxDepth), Err: ErrMaxDepth}
	}
	child, err := p.parseDocument(g.lines, depth+1)
	if err != nil {
		return err
	}
	doc.Pairs = append(doc.Pairs, &ast.Pair{
		Token:   g.key,
		Key:     g.name,
		Value:   &ast.Group{Token: g.key, Document: child},
		Comment: g.comment,
	})
	return nil
}

// opensGroup reports whether the first line after skipping blanks and
// comments is indented.
func opensGroup(rest []token.Token) bool {
	for _, tok := range rest {
		if tok.Type == token.BLANK || tok.Type == token.COMMENT {
			continue
		}
		return tok.Indent > 0
	}
	return false
}

func appendComment(c *ast.Comment, tok token.Token) *ast.Comment {
	if c == nil {
		return &ast.Comment{Token: tok, Value: tok.CommentText()}
	}
	c.Append(tok.CommentText())
	return c
}
