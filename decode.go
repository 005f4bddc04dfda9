package janconf

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-janconf/internal/ast"
	"github.com/KimNorgaard/go-janconf/internal/lexer"
	"github.com/KimNorgaard/go-janconf/internal/mapper"
	"github.com/KimNorgaard/go-janconf/internal/parser"
)

// Unmarshaler is the interface implemented by types that can unmarshal a
// JanConf group themselves. The input is the group rendered as a document
// with default formatting.
type Unmarshaler interface {
	UnmarshalJanConf([]byte) error
}

// Decoder reads and decodes JanConf documents from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Note: This is a non-streaming implementation. Decode reads the entire
// reader into memory before parsing.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads a whole JanConf document from its input and stores it in the
// value pointed to by v. If v is a *Document its previous contents are
// replaced; otherwise the document is mapped as described for Unmarshal.
//
// If the input is malformed, Decode returns a *ParseError.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("janconf: Decode(nil reader)")
	}
	o, err := newOptions(d.opts)
	if err != nil {
		return err
	}
	doc, err := parse(d.r, o)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v)
}

// Parse parses JanConf source into a Document. Parsing stops at the first
// malformed line; the error is a *ParseError and no partial document is
// returned.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(bytes.NewReader(data), o)
}

// ParseString is like Parse but takes a string.
func ParseString(src string, opts ...Option) (*Document, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return parse(strings.NewReader(src), o)
}

// Unmarshal parses data and stores the result in the value pointed to by v.
//
// Groups map into structs (by field name or `janconf:"key"` tag, unknown
// keys are ignored; fields of untagged embedded structs are promoted and nil
// embedded pointers allocated), maps with string keys, *Document and empty interfaces,
// which receive a map[string]any. Scalars map into strings, booleans,
// integers and floats using the strconv parsing rules, into
// encoding.TextUnmarshaler implementations, and into empty interfaces as
// strings.
func Unmarshal(data []byte, v any, opts ...Option) error {
	doc, err := Parse(data, opts...)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v)
}

func parse(r io.Reader, o *options) (*Document, error) {
	p := parser.New(lexer.New(r))
	p.SetMaxDepth(o.maxDepth)
	tree, err := p.Parse()
	if err != nil {
		return nil, newParseError(err)
	}
	return build(tree), nil
}

// build materializes the parse tree. Repeated keys overwrite earlier ones in
// place, keeping the position of the first occurrence.
func build(tree *ast.Document) *Document {
	doc := New()
	for _, p := range tree.Pairs {
		var comment *string
		if p.Comment != nil {
			text := p.Comment.Value
			comment = &text
		}
		switch v := p.Value.(type) {
		case *ast.Scalar:
			doc.put(p.Key, Scalar(v.Value), comment)
		case *ast.Group:
			doc.put(p.Key, build(v.Document), comment)
		}
	}
	return doc
}

func decodeDocument(doc *Document, v any) error {
	if target, ok := v.(*Document); ok && target != nil {
		*target = *doc
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("janconf: Unmarshal(non-pointer %T or nil)", v)
	}
	ds := &decodeState{}
	return ds.mapValue("", doc, rv.Elem())
}

type decodeState struct{}

var (
	documentType  = reflect.TypeOf((*Document)(nil))
	unmarshalType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textType      = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func (ds *decodeState) mapValue(key string, val Value, rv reflect.Value) error { //nolint:gocyclo
	if rv.Type() == documentType {
		g, ok := val.(*Document)
		if !ok {
			return &TypeMismatchError{Key: key, Want: KindGroup, Got: val.Kind()}
		}
		rv.Set(reflect.ValueOf(g))
		return nil
	}

	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return ds.mapValue(key, val, rv.Elem())
	}

	handled, err := ds.tryCustomUnmarshal(key, val, rv)
	if handled || err != nil {
		return err
	}

	switch v := val.(type) {
	case *Document:
		return ds.mapGroup(key, v, rv)
	case Scalar:
		return ds.mapScalar(key, v.Escaped(), rv)
	}
	return nil
}

// tryCustomUnmarshal uses Unmarshaler for groups and
// encoding.TextUnmarshaler for scalars when rv's address implements them.
func (ds *decodeState) tryCustomUnmarshal(key string, val Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	switch v := val.(type) {
	case *Document:
		if pv.Type().Implements(unmarshalType) {
			u := pv.Interface().(Unmarshaler)
			if err := u.UnmarshalJanConf([]byte(v.String())); err != nil {
				return true, &MarshalerError{Type: pv.Type(), Err: err}
			}
			return true, nil
		}
	case Scalar:
		if pv.Type().Implements(textType) {
			u := pv.Interface().(encoding.TextUnmarshaler)
			if err := u.UnmarshalText([]byte(v.Escaped())); err != nil {
				return true, &FormatError{Key: key, Text: v.Escaped(), Type: rv.Type().String(), Err: err}
			}
			return true, nil
		}
	}
	return false, nil
}

func (ds *decodeState) mapGroup(key string, doc *Document, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return &UnsupportedTypeError{Type: rv.Type()}
		}
		m := make(map[string]any, doc.Len())
		for k, e := range doc.All() {
			var elem any
			if err := ds.mapValue(k, e.Value, reflect.ValueOf(&elem).Elem()); err != nil {
				return err
			}
			m[k] = elem
		}
		rv.Set(reflect.ValueOf(m))
		return nil

	case reflect.Map:
		t := rv.Type()
		if t.Key().Kind() != reflect.String {
			return fmt.Errorf("janconf: map key type must be a string, got %s", t.Key())
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(t, doc.Len()))
		}
		for k, e := range doc.All() {
			elem := reflect.New(t.Elem()).Elem()
			if err := ds.mapValue(k, e.Value, elem); err != nil {
				return err
			}
			rv.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
		}
		return nil

	case reflect.Struct:
		for k, e := range doc.All() {
			f, ok := mapper.Lookup(rv.Type(), k)
			if !ok {
				continue
			}
			if err := ds.mapValue(k, e.Value, mapper.Settable(rv, f.Index)); err != nil {
				return err
			}
		}
		return nil

	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return &TypeMismatchError{Key: key, Want: KindScalar, Got: KindGroup}

	default:
		return &UnsupportedTypeError{Type: rv.Type()}
	}
}

func (ds *decodeState) mapScalar(key, text string, rv reflect.Value) error {
	formatErr := func(err error) error {
		return &FormatError{Key: key, Text: text, Type: rv.Type().String(), Err: err}
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return &UnsupportedTypeError{Type: rv.Type()}
		}
		rv.Set(reflect.ValueOf(text))
	case reflect.String:
		rv.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return formatErr(err)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, rv.Type().Bits())
		if err != nil {
			return formatErr(err)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(text, 10, rv.Type().Bits())
		if err != nil {
			return formatErr(err)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, rv.Type().Bits())
		if err != nil {
			return formatErr(err)
		}
		rv.SetFloat(f)
	case reflect.Map, reflect.Struct:
		return &TypeMismatchError{Key: key, Want: KindGroup, Got: KindScalar}
	default:
		return &UnsupportedTypeError{Type: rv.Type()}
	}
	return nil
}
