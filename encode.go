package janconf

import (
	"bytes"
	"encoding"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-janconf/internal/mapper"
)

// Marshaler is the interface implemented by types that can marshal
// themselves into a JanConf document. The returned text is parsed and stored
// as a group.
type Marshaler interface {
	MarshalJanConf() ([]byte, error)
}

// Encoder writes JanConf documents to an output stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the JanConf encoding of v to the stream. See Marshal for the
// accepted values.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	doc, err := toDocument(v)
	if err != nil {
		return err
	}
	return newFormatter(e.w, o).format(doc)
}

// Marshal returns the JanConf encoding of v.
//
// A *Document is serialized as is. Structs and maps with string keys become
// documents: struct fields use their name or the key given in a
// `janconf:"key,omitempty"` tag, and map keys are written in sorted order.
// Fields of untagged embedded structs are written as if they belonged to the
// outer struct; a nil embedded pointer contributes nothing.
// Nested structs and maps become groups. Strings, booleans, integers and
// floats become scalars, as do encoding.TextMarshaler implementations. Nil
// pointers and interfaces are omitted. Slices, arrays, channels, functions
// and complex numbers have no representation and yield an
// *UnsupportedTypeError.
func Marshal(v any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String serializes d with the default options: two-space indent and a space
// after each scalar's ':'.
func (d *Document) String() string {
	var sb strings.Builder
	o, _ := newOptions(nil)
	_ = newFormatter(&sb, o).format(d)
	return sb.String()
}

func toDocument(v any) (*Document, error) {
	if doc, ok := v.(*Document); ok {
		if doc == nil {
			return nil, fmt.Errorf("%w: nil *Document", ErrInvalidArgument)
		}
		return doc, nil
	}
	es := &encodeState{}
	val, ok, err := es.marshalValue(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot marshal nil value", ErrInvalidArgument)
	}
	doc, ok := val.(*Document)
	if !ok {
		return nil, fmt.Errorf("janconf: cannot marshal %T as a document, only structs and maps", v)
	}
	return doc, nil
}

type encodeState struct{}

func (e *encodeState) marshalCustom(v reflect.Value, m Marshaler) (Value, error) {
	b, err := m.MarshalJanConf()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	doc, err := Parse(b)
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: fmt.Errorf("invalid JanConf output: %w", err)}
	}
	return doc, nil
}

func (e *encodeState) marshalText(v reflect.Value, m encoding.TextMarshaler) (Value, error) {
	b, err := m.MarshalText()
	if err != nil {
		return nil, &MarshalerError{Type: v.Type(), Err: err}
	}
	return Scalar(b), nil
}

// marshalValue converts v. The boolean result is false for nil values, which
// are left out of the enclosing document.
func (e *encodeState) marshalValue(v reflect.Value) (Value, bool, error) { //nolint:gocyclo
	if !v.IsValid() {
		return nil, false, nil
	}

	// Check the value itself and a pointer to the value, to handle both
	// value and pointer receivers.
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false, nil
	}
	if v.CanInterface() {
		switch m := v.Interface().(type) {
		case *Document:
			return m.Clone(), true, nil
		case Marshaler:
			val, err := e.marshalCustom(v, m)
			return val, err == nil, err
		case encoding.TextMarshaler:
			val, err := e.marshalText(v, m)
			return val, err == nil, err
		}
	}
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface && v.CanAddr() {
		pv := v.Addr()
		if pv.CanInterface() {
			switch m := pv.Interface().(type) {
			case *Document:
				return m.Clone(), true, nil
			case Marshaler:
				val, err := e.marshalCustom(pv, m)
				return val, err == nil, err
			case encoding.TextMarshaler:
				val, err := e.marshalText(pv, m)
				return val, err == nil, err
			}
		}
	}

	// Follow pointers and interfaces to find the concrete value.
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false, nil
		}
		return e.marshalValue(v.Elem())
	}

	switch v.Kind() {
	case reflect.String:
		return Scalar(v.String()), true, nil
	case reflect.Bool:
		return Scalar(strconv.FormatBool(v.Bool())), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(strconv.FormatInt(v.Int(), 10)), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Scalar(strconv.FormatUint(v.Uint(), 10)), true, nil
	case reflect.Float32:
		return Scalar(strconv.FormatFloat(v.Float(), 'g', -1, 32)), true, nil
	case reflect.Float64:
		return Scalar(strconv.FormatFloat(v.Float(), 'g', -1, 64)), true, nil
	case reflect.Map:
		return e.marshalMap(v)
	case reflect.Struct:
		return e.marshalStruct(v)
	default:
		return nil, false, &UnsupportedTypeError{Type: v.Type()}
	}
}

func (e *encodeState) marshalMap(v reflect.Value) (Value, bool, error) {
	if v.IsNil() {
		return nil, false, nil
	}
	if v.Type().Key().Kind() != reflect.String {
		return nil, false, fmt.Errorf("janconf: map key type must be a string, got %s", v.Type().Key())
	}

	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	doc := New()
	for _, key := range keys {
		val, ok, err := e.marshalValue(v.MapIndex(key))
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if err := doc.Put(key.String(), val); err != nil {
			return nil, false, err
		}
	}
	return doc, true, nil
}

func (e *encodeState) marshalStruct(v reflect.Value) (Value, bool, error) {
	doc := New()
	for _, f := range mapper.Fields(v.Type()) {
		fv, ok := mapper.Value(v, f.Index)
		if !ok {
			continue
		}
		if f.OmitEmpty && mapper.IsEmptyValue(fv) {
			continue
		}
		val, ok, err := e.marshalValue(fv)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		if err := doc.Put(f.Name, val); err != nil {
			return nil, false, err
		}
	}
	return doc, true, nil
}
