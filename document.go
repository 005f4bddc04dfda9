package janconf

import (
	"encoding"
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Document is an ordered mapping from keys to entries. Keys are unique and
// keep the position of their first insertion; serialization follows that
// order. The zero value is an empty document ready to use.
//
// A Document owns the nested Documents stored in it. Documents are not safe
// for concurrent use without external locking.
type Document struct {
	entries []*Entry
	index   map[string]int
}

// New returns an empty Document.
func New() *Document {
	return &Document{}
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// All iterates over the entries in insertion order.
func (d *Document) All() iter.Seq2[string, Entry] {
	return func(yield func(string, Entry) bool) {
		for _, e := range d.entries {
			if !yield(e.Key, *e) {
				return
			}
		}
	}
}

// Lookup returns the entry stored under key.
func (d *Document) Lookup(key string) (Entry, bool) {
	e := d.lookup(key)
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Path follows keys through nested groups and returns the entry at the end.
// It returns false if any key is missing or an intermediate entry is a
// scalar.
func (d *Document) Path(keys ...string) (Entry, bool) {
	if len(keys) == 0 {
		return Entry{}, false
	}
	cur := d
	for _, key := range keys[:len(keys)-1] {
		e := cur.lookup(key)
		if e == nil {
			return Entry{}, false
		}
		g, ok := e.Value.(*Document)
		if !ok {
			return Entry{}, false
		}
		cur = g
	}
	return cur.Lookup(keys[len(keys)-1])
}

// Type returns the kind of the value stored under key.
func (d *Document) Type(key string) (Kind, bool) {
	e := d.lookup(key)
	if e == nil {
		return 0, false
	}
	return e.Value.Kind(), true
}

// Put stores value under key, replacing any previous entry and its comment.
// A *Document value is stored as a group; anything else is converted to
// text. Strings, fmt.Stringer and encoding.TextMarshaler implementations,
// booleans and numbers are accepted.
//
// Put returns an error wrapping ErrInvalidArgument if value is nil, cannot
// be converted to text, or if key cannot be written in the text format: a
// key may not contain ':' or line breaks and may not start with a space or
// '#'.
func (d *Document) Put(key string, value any) error {
	return d.putAny(key, value, nil)
}

// PutCommented is like Put and also attaches comment to the entry. The
// comment may span several lines.
func (d *Document) PutCommented(key string, value any, comment string) error {
	return d.putAny(key, value, &comment)
}

// MustPut is like Put but panics on error. It returns d so calls can be
// chained when building documents in code.
func (d *Document) MustPut(key string, value any) *Document {
	if err := d.Put(key, value); err != nil {
		panic(err)
	}
	return d
}

// Remove deletes key. It does nothing if key is absent.
func (d *Document) Remove(key string) *Document {
	i, ok := d.index[key]
	if !ok {
		return d
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	delete(d.index, key)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Key] = j
	}
	return d
}

// PutComment sets the comment of an existing key. It does nothing if key is
// absent.
func (d *Document) PutComment(key, comment string) *Document {
	if e := d.lookup(key); e != nil {
		e.Comment = &comment
	}
	return d
}

// Comment returns the comment attached to key, and whether there is one.
func (d *Document) Comment(key string) (string, bool) {
	e := d.lookup(key)
	if e == nil || e.Comment == nil {
		return "", false
	}
	return *e.Comment, true
}

// IsCommented reports whether key exists and carries a comment.
func (d *Document) IsCommented(key string) bool {
	_, ok := d.Comment(key)
	return ok
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := New()
	for _, e := range d.entries {
		v := e.Value
		if g, ok := v.(*Document); ok {
			v = g.Clone()
		}
		var comment *string
		if e.Comment != nil {
			text := *e.Comment
			comment = &text
		}
		c.put(e.Key, v, comment)
	}
	return c
}

// Equal reports whether d and other have the same keys in the same order,
// with equal values and comments.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.entries) != len(other.entries) {
		return false
	}
	for i, a := range d.entries {
		b := other.entries[i]
		if a.Key != b.Key || !equalComment(a.Comment, b.Comment) {
			return false
		}
		switch av := a.Value.(type) {
		case Scalar:
			if bv, ok := b.Value.(Scalar); !ok || av != bv {
				return false
			}
		case *Document:
			if bv, ok := b.Value.(*Document); !ok || !av.Equal(bv) {
				return false
			}
		}
	}
	return true
}

func equalComment(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (d *Document) lookup(key string) *Entry {
	i, ok := d.index[key]
	if !ok {
		return nil
	}
	return d.entries[i]
}

// put stores v under key. An existing key keeps its position.
func (d *Document) put(key string, v Value, comment *string) {
	e := &Entry{Key: key, Value: v, Comment: comment}
	if i, ok := d.index[key]; ok {
		d.entries[i] = e
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, e)
}

func (d *Document) putAny(key string, value any, comment *string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	v, err := toValue(value)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrInvalidArgument, key, err)
	}
	if g, ok := v.(*Document); ok && g.contains(d) {
		return fmt.Errorf("%w: key %q: a document cannot contain itself", ErrInvalidArgument, key)
	}
	d.put(key, v, comment)
	return nil
}

// contains reports whether target is d or nested anywhere inside it.
func (d *Document) contains(target *Document) bool {
	if d == target {
		return true
	}
	for _, e := range d.entries {
		if g, ok := e.Value.(*Document); ok && g.contains(target) {
			return true
		}
	}
	return false
}

func validateKey(key string) error {
	switch {
	case strings.ContainsAny(key, ":\r\n"):
		return fmt.Errorf("%w: key %q contains ':' or a line break", ErrInvalidArgument, key)
	case strings.HasPrefix(key, " "), strings.HasPrefix(key, "#"):
		return fmt.Errorf("%w: key %q starts with a space or '#'", ErrInvalidArgument, key)
	}
	return nil
}

func toValue(value any) (Value, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("value is nil")
	case *Document:
		if v == nil {
			return nil, fmt.Errorf("value is a nil *Document")
		}
		return v, nil
	case Scalar:
		return v, nil
	case string:
		return Scalar(v), nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("value is a nil %T", value)
	}
	if m, ok := value.(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return Scalar(text), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, err
	}
	return Scalar(s), nil
}
