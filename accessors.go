package janconf

import (
	"strconv"
)

// Get returns the text stored under key, with newlines rendered as `\n`. A
// missing key yields the empty string. Get fails with a *TypeMismatchError if
// key holds a group.
func (d *Document) Get(key string) (string, error) {
	return d.GetOr(key, "")
}

// GetOr is like Get but returns def when key is missing.
func (d *Document) GetOr(key, def string) (string, error) {
	text, ok, err := d.scalarText(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return text, nil
}

// Int parses the value of key as a decimal int. A missing key yields 0.
func (d *Document) Int(key string) (int, error) {
	return d.IntOr(key, 0)
}

// IntOr is like Int but returns def when key is missing.
func (d *Document) IntOr(key string, def int) (int, error) {
	return parseScalar(d, key, def, "int", strconv.Atoi)
}

// Int16 parses the value of key as a decimal 16-bit integer.
func (d *Document) Int16(key string) (int16, error) {
	return d.Int16Or(key, 0)
}

// Int16Or is like Int16 but returns def when key is missing.
func (d *Document) Int16Or(key string, def int16) (int16, error) {
	return parseScalar(d, key, def, "int16", func(s string) (int16, error) {
		n, err := strconv.ParseInt(s, 10, 16)
		return int16(n), err
	})
}

// Int64 parses the value of key as a decimal 64-bit integer.
func (d *Document) Int64(key string) (int64, error) {
	return d.Int64Or(key, 0)
}

// Int64Or is like Int64 but returns def when key is missing.
func (d *Document) Int64Or(key string, def int64) (int64, error) {
	return parseScalar(d, key, def, "int64", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Float32 parses the value of key as a 32-bit float.
func (d *Document) Float32(key string) (float32, error) {
	return d.Float32Or(key, 0)
}

// Float32Or is like Float32 but returns def when key is missing.
func (d *Document) Float32Or(key string, def float32) (float32, error) {
	return parseScalar(d, key, def, "float32", func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
}

// Float64 parses the value of key as a 64-bit float.
func (d *Document) Float64(key string) (float64, error) {
	return d.Float64Or(key, 0)
}

// Float64Or is like Float64 but returns def when key is missing.
func (d *Document) Float64Or(key string, def float64) (float64, error) {
	return parseScalar(d, key, def, "float64", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Bool parses the value of key with strconv.ParseBool. A missing key yields
// false.
func (d *Document) Bool(key string) (bool, error) {
	return d.BoolOr(key, false)
}

// BoolOr is like Bool but returns def when key is missing.
func (d *Document) BoolOr(key string, def bool) (bool, error) {
	return parseScalar(d, key, def, "bool", strconv.ParseBool)
}

// Group returns the nested document stored under key, or nil if key is
// missing. It fails with a *TypeMismatchError if key holds a scalar.
func (d *Document) Group(key string) (*Document, error) {
	return d.GroupOr(key, nil)
}

// GroupOr is like Group but returns def when key is missing.
func (d *Document) GroupOr(key string, def *Document) (*Document, error) {
	e := d.lookup(key)
	if e == nil {
		return def, nil
	}
	g, ok := e.Value.(*Document)
	if !ok {
		return nil, &TypeMismatchError{Key: key, Want: KindGroup, Got: e.Value.Kind()}
	}
	return g, nil
}

// GroupSafe is like Group but returns a new empty document when key is
// missing. The empty document is not stored in d.
func (d *Document) GroupSafe(key string) (*Document, error) {
	return d.GroupOr(key, New())
}

// scalarText returns the escaped text under key and whether key exists.
func (d *Document) scalarText(key string) (string, bool, error) {
	e := d.lookup(key)
	if e == nil {
		return "", false, nil
	}
	s, ok := e.Value.(Scalar)
	if !ok {
		return "", true, &TypeMismatchError{Key: key, Want: KindScalar, Got: e.Value.Kind()}
	}
	return s.Escaped(), true, nil
}

// parseScalar reads key with parse. Defaults are returned as given and never
// go through parse.
func parseScalar[T any](d *Document, key string, def T, typ string, parse func(string) (T, error)) (T, error) {
	var zero T
	text, ok, err := d.scalarText(key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return def, nil
	}
	v, err := parse(text)
	if err != nil {
		return zero, &FormatError{Key: key, Text: text, Type: typ, Err: err}
	}
	return v, nil
}
