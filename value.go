package janconf

import "strings"

// Kind identifies the variant of an entry's value.
type Kind int

const (
	// KindScalar is a text value.
	KindScalar Kind = iota + 1
	// KindGroup is a nested Document.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindGroup:
		return "group"
	default:
		return "invalid kind"
	}
}

// Value is the value of an entry: either a Scalar or a *Document. The set of
// implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

// Scalar is a text value. Numeric and boolean readings are derived from it
// only when a typed accessor is called.
type Scalar string

// Kind returns KindScalar.
func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isValue()   {}

// Escaped returns the text with every newline rendered as the two
// characters `\n`. This is the form returned by Document.Get and written by
// the serializer.
func (s Scalar) Escaped() string {
	return strings.ReplaceAll(string(s), "\n", `\n`)
}

// Kind returns KindGroup.
func (*Document) Kind() Kind { return KindGroup }
func (*Document) isValue()   {}

// Entry is a value stored under a key, with an optional comment.
type Entry struct {
	Key     string
	Value   Value
	Comment *string
}

// Scalar returns the entry's scalar value and true, or false if the entry is
// a group.
func (e Entry) Scalar() (Scalar, bool) {
	s, ok := e.Value.(Scalar)
	return s, ok
}

// Group returns the entry's nested document and true, or false if the entry
// is a scalar.
func (e Entry) Group() (*Document, bool) {
	d, ok := e.Value.(*Document)
	return d, ok
}
