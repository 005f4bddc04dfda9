package janconf

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/KimNorgaard/go-janconf/internal/parser"
)

var (
	// ErrInvalidArgument is returned by mutators given a nil value or a key
	// the text format cannot represent.
	ErrInvalidArgument = errors.New("janconf: invalid argument")
	// ErrTypeMismatch is returned when a scalar accessor is used on a group or
	// a group accessor on a scalar.
	ErrTypeMismatch = errors.New("janconf: type mismatch")
	// ErrFormat is returned when a typed accessor cannot parse the stored text.
	ErrFormat = errors.New("janconf: format error")
	// ErrConfiguration is returned for invalid options.
	ErrConfiguration = errors.New("janconf: configuration error")
	// ErrMalformedLine is wrapped by a ParseError for lines that do not fit
	// the grammar.
	ErrMalformedLine = parser.ErrMalformedLine
	// ErrMaxDepth is wrapped by a ParseError when groups nest deeper than
	// MaxDepth allows.
	ErrMaxDepth = parser.ErrMaxDepth
)

// ParseError is returned when source text cannot be parsed. Line is the
// 1-based source line of the offending construct.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("janconf: parsing error at line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(err error) error {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Message: perr.Msg, Err: perr.Err}
	}
	return fmt.Errorf("janconf: reading source: %w", err)
}

// A TypeMismatchError describes an accessor used on an entry of the other
// kind.
type TypeMismatchError struct {
	Key  string
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("janconf: key %q holds a %s, not a %s", e.Key, e.Got, e.Want)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// A FormatError describes scalar text that could not be parsed as the
// requested Go type.
type FormatError struct {
	Key  string
	Text string
	Type string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("janconf: cannot parse %q under key %q as %s: %v", e.Text, e.Key, e.Type, e.Err)
}

func (e *FormatError) Unwrap() []error { return []error{ErrFormat, e.Err} }

// A MarshalerError represents an error from calling a MarshalJanConf or
// UnmarshalJanConf method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "janconf: error calling custom marshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnsupportedTypeError is returned by Marshal and Unmarshal when asked to
// convert a Go type that has no JanConf representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "janconf: unsupported type: " + e.Type.String()
}
