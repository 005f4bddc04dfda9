package janconf_test

import (
	"bytes"
	"errors"
	"net/netip"
	"testing"

	"github.com/KimNorgaard/go-janconf"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) MarshalText() ([]byte, error) {
	switch l {
	case 0:
		return []byte("low"), nil
	case 1:
		return []byte("high"), nil
	}
	return nil, errors.New("unknown level")
}

type pair struct {
	A, B string
}

func (p pair) MarshalJanConf() ([]byte, error) {
	if p.A == "" {
		return nil, errors.New("empty pair")
	}
	return []byte("first: " + p.A + "\nsecond: " + p.B), nil
}

type Meta struct {
	ID   string `janconf:"id"`
	Note string `janconf:"note,omitempty"`
}

type tagged struct {
	*Meta
	Name string `janconf:"name"`
	Note string `janconf:"note"`
}

type broken struct{}

func (broken) MarshalJanConf() ([]byte, error) {
	return []byte("no colon here"), nil
}

func TestMarshal(t *testing.T) {
	t.Run("Struct", func(t *testing.T) {
		type db struct {
			Host string `janconf:"host"`
			Port uint16 `janconf:"port"`
		}
		v := struct {
			Name    string   `janconf:"name"`
			Debug   bool     `janconf:"debug"`
			Ratio   float32  `janconf:"ratio"`
			Skip    string   `janconf:"-"`
			Missing *db      `janconf:"missing"`
			DB      db       `janconf:"db"`
			Addr    netip.Addr
			hidden  string
		}{
			Name:   "edge",
			Debug:  true,
			Ratio:  0.1,
			Skip:   "x",
			DB:     db{Host: "localhost", Port: 5432},
			Addr:   netip.MustParseAddr("::1"),
			hidden: "y",
		}

		b, err := janconf.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "name: edge\ndebug: true\nratio: 0.1\ndb:\n  host: localhost\n  port: 5432\nAddr: ::1", string(b))
	})

	t.Run("Embedded Struct", func(t *testing.T) {
		b, err := janconf.Marshal(tagged{Meta: &Meta{ID: "7", Note: "inner"}, Name: "n", Note: "outer"})
		require.NoError(t, err)
		require.Equal(t, "id: 7\nname: n\nnote: outer", string(b))

		b, err = janconf.Marshal(tagged{Name: "n"})
		require.NoError(t, err)
		require.Equal(t, "name: n\nnote:", string(b))
	})

	t.Run("Map Keys Sorted", func(t *testing.T) {
		b, err := janconf.Marshal(map[string]any{
			"zeta":  1,
			"alpha": map[string]int{"y": 2, "x": 1},
			"nil":   nil,
		})
		require.NoError(t, err)
		require.Equal(t, "alpha:\n  x: 1\n  y: 2\nzeta: 1", string(b))
	})

	t.Run("OmitEmpty", func(t *testing.T) {
		v := struct {
			A string            `janconf:"a,omitempty"`
			B int               `janconf:"b,omitempty"`
			C map[string]string `janconf:"c,omitempty"`
			D string            `janconf:"d"`
		}{}
		b, err := janconf.Marshal(&v)
		require.NoError(t, err)
		require.Equal(t, "d:", string(b))
	})

	t.Run("Custom Marshalers", func(t *testing.T) {
		v := struct {
			Level level `janconf:"level"`
			Pair  pair  `janconf:"pair"`
		}{Level: 1, Pair: pair{A: "x", B: "y"}}
		b, err := janconf.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "level: high\npair:\n  first: x\n  second: y", string(b))

		v.Level = 7
		_, err = janconf.Marshal(v)
		var merr *janconf.MarshalerError
		require.ErrorAs(t, err, &merr)

		v.Level = 0
		v.Pair = pair{}
		_, err = janconf.Marshal(v)
		require.ErrorAs(t, err, &merr)

		_, err = janconf.Marshal(map[string]broken{"b": {}})
		require.ErrorAs(t, err, &merr)
		require.ErrorIs(t, err, janconf.ErrMalformedLine)
	})

	t.Run("Document", func(t *testing.T) {
		doc := janconf.New().MustPut("a", 1)
		doc.PutComment("a", "one")
		b, err := janconf.Marshal(doc)
		require.NoError(t, err)
		require.Equal(t, "# one\na: 1", string(b))

		b, err = janconf.Marshal(struct {
			Doc *janconf.Document `janconf:"doc"`
		}{Doc: doc})
		require.NoError(t, err)
		require.Equal(t, "doc:\n  # one\n  a: 1", string(b))
	})

	t.Run("Unsupported", func(t *testing.T) {
		testCases := []any{
			struct{ S []string }{S: []string{"a"}},
			map[string]complex64{"c": 1},
			struct{ F func() }{F: func() {}},
		}
		for _, v := range testCases {
			_, err := janconf.Marshal(v)
			var uerr *janconf.UnsupportedTypeError
			require.ErrorAs(t, err, &uerr, "%T", v)
		}
	})

	t.Run("Not A Document", func(t *testing.T) {
		_, err := janconf.Marshal("scalar")
		require.Error(t, err)

		_, err = janconf.Marshal(nil)
		require.ErrorIs(t, err, janconf.ErrInvalidArgument)

		var doc *janconf.Document
		_, err = janconf.Marshal(doc)
		require.ErrorIs(t, err, janconf.ErrInvalidArgument)

		_, err = janconf.Marshal(map[int]string{1: "a"})
		require.Error(t, err)
	})

	t.Run("Invalid Map Key", func(t *testing.T) {
		_, err := janconf.Marshal(map[string]int{"a:b": 1})
		require.ErrorIs(t, err, janconf.ErrInvalidArgument)
	})
}

func TestEncoder(t *testing.T) {
	doc, err := janconf.ParseString("g:\n  k: v\ns: 1")
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := janconf.NewEncoder(&buf, janconf.Indent(4), janconf.ValueSpacing(false))
	require.NoError(t, enc.Encode(doc))
	require.Equal(t, "g:\n    k:v\ns:1", buf.String())

	t.Run("Invalid Indent", func(t *testing.T) {
		for _, n := range []int{0, -1} {
			_, err := janconf.Marshal(doc, janconf.Indent(n))
			require.ErrorIs(t, err, janconf.ErrConfiguration)
		}
	})
}
