package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-janconf/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token associated with the node.
	TokenLiteral() string
	// String returns a string representation of the node.
	String() string
}

// Value is a node that can appear on the right-hand side of a pair.
type Value interface {
	Node
	valueNode()
}

// Document is the root node of a JanConf document, and the body of every
// group.
type Document struct {
	Pairs []*Pair
}

// TokenLiteral returns the literal value of the token associated with the node.
func (d *Document) TokenLiteral() string {
	if len(d.Pairs) > 0 {
		return d.Pairs[0].TokenLiteral()
	}
	return ""
}

// String returns a string representation of the node.
func (d *Document) String() string {
	var out bytes.Buffer
	pairs := []string{}
	for _, p := range d.Pairs {
		pairs = append(pairs, p.String())
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// Pair is a key with its value and the comment written above it.
type Pair struct {
	Token   token.Token // the key line
	Key     string
	Value   Value
	Comment *Comment
}

func (p *Pair) TokenLiteral() string { return p.Token.Literal }
func (p *Pair) String() string {
	var out bytes.Buffer
	if p.Comment != nil {
		out.WriteString(p.Comment.String())
		out.WriteString(" ")
	}
	out.WriteString(strconv.Quote(p.Key))
	out.WriteString(":")
	out.WriteString(p.Value.String())
	return out.String()
}

// Comment holds the text of one or more consecutive comment lines, joined by
// newlines.
type Comment struct {
	Token token.Token // the first comment line
	Value string
}

func (c *Comment) TokenLiteral() string { return c.Token.Literal }
func (c *Comment) String() string       { return "#" + strconv.Quote(c.Value) }

// Append adds the text of another comment line.
func (c *Comment) Append(text string) {
	c.Value += "\n" + text
}

// Scalar represents a text value.
type Scalar struct {
	Token token.Token
	Value string
}

func (s *Scalar) valueNode()           {}
func (s *Scalar) TokenLiteral() string { return s.Token.Literal }
func (s *Scalar) String() string       { return strconv.Quote(s.Value) }

// Group represents a nested document introduced by an indented block.
type Group struct {
	Token    token.Token // the key line that opened the group
	Document *Document
}

func (g *Group) valueNode()           {}
func (g *Group) TokenLiteral() string { return g.Token.Literal }
func (g *Group) String() string       { return g.Document.String() }
