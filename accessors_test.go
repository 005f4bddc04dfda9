package janconf_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/KimNorgaard/go-janconf"
	"github.com/stretchr/testify/require"
)

const typedSource = `int: 42
negative: -7
short: 32767
long: 9007199254740993
float: 3.25
bool: true
word: hello
group:
  inner: 1`

func TestAccessors_Typed(t *testing.T) {
	doc, err := janconf.ParseString(typedSource)
	require.NoError(t, err)

	n, err := doc.Int("int")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = doc.Int("negative")
	require.NoError(t, err)
	require.Equal(t, -7, n)

	s, err := doc.Int16("short")
	require.NoError(t, err)
	require.Equal(t, int16(32767), s)

	l, err := doc.Int64("long")
	require.NoError(t, err)
	require.Equal(t, int64(9007199254740993), l)

	f32, err := doc.Float32("float")
	require.NoError(t, err)
	require.Equal(t, float32(3.25), f32)

	f64, err := doc.Float64("float")
	require.NoError(t, err)
	require.Equal(t, 3.25, f64)

	b, err := doc.Bool("bool")
	require.NoError(t, err)
	require.True(t, b)

	g, err := doc.Group("group")
	require.NoError(t, err)
	inner, err := g.Int("inner")
	require.NoError(t, err)
	require.Equal(t, 1, inner)
}

func TestAccessors_Missing(t *testing.T) {
	doc := janconf.New()

	require.False(t, doc.Has("missing"))

	s, err := doc.Get("missing")
	require.NoError(t, err)
	require.Equal(t, "", s)

	s, err = doc.GetOr("missing", "d")
	require.NoError(t, err)
	require.Equal(t, "d", s)

	n, err := doc.IntOr("missing", 5)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = doc.Int("missing")
	require.NoError(t, err)
	require.Zero(t, n)

	i16, err := doc.Int16Or("missing", -3)
	require.NoError(t, err)
	require.Equal(t, int16(-3), i16)

	i64, err := doc.Int64Or("missing", 1<<40)
	require.NoError(t, err)
	require.Equal(t, int64(1<<40), i64)

	f32, err := doc.Float32Or("missing", 1.5)
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f32)

	f64, err := doc.Float64Or("missing", 2.5)
	require.NoError(t, err)
	require.Equal(t, 2.5, f64)

	b, err := doc.BoolOr("missing", true)
	require.NoError(t, err)
	require.True(t, b)

	g, err := doc.Group("missing")
	require.NoError(t, err)
	require.Nil(t, g)

	def := janconf.New().MustPut("x", 1)
	g, err = doc.GroupOr("missing", def)
	require.NoError(t, err)
	require.Same(t, def, g)

	g, err = doc.GroupSafe("missing")
	require.NoError(t, err)
	require.NotNil(t, g)
	require.Equal(t, 0, g.Len())
	require.False(t, doc.Has("missing"))
}

func TestAccessors_FormatError(t *testing.T) {
	doc := janconf.New().
		MustPut("word", "hello").
		MustPut("big", "70000").
		MustPut("frac", "1.5").
		MustPut("yes", "yes")

	testCases := []struct {
		name string
		call func() error
		key  string
		typ  string
	}{
		{name: "int", key: "word", typ: "int", call: func() error { _, err := doc.Int("word"); return err }},
		{name: "int with default", key: "frac", typ: "int", call: func() error { _, err := doc.IntOr("frac", 9); return err }},
		{name: "int16 overflow", key: "big", typ: "int16", call: func() error { _, err := doc.Int16("big"); return err }},
		{name: "int64", key: "frac", typ: "int64", call: func() error { _, err := doc.Int64("frac"); return err }},
		{name: "float32", key: "word", typ: "float32", call: func() error { _, err := doc.Float32("word"); return err }},
		{name: "float64", key: "word", typ: "float64", call: func() error { _, err := doc.Float64("word"); return err }},
		{name: "bool", key: "yes", typ: "bool", call: func() error { _, err := doc.Bool("yes"); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.ErrorIs(t, err, janconf.ErrFormat)

			var ferr *janconf.FormatError
			require.ErrorAs(t, err, &ferr)
			require.Equal(t, tc.key, ferr.Key)
			require.Equal(t, tc.typ, ferr.Type)

			var nerr *strconv.NumError
			require.True(t, errors.As(err, &nerr))
		})
	}

	t.Run("range error", func(t *testing.T) {
		_, err := doc.Int16("big")
		require.ErrorIs(t, err, strconv.ErrRange)
	})

	t.Run("zero value on failure", func(t *testing.T) {
		n, err := doc.IntOr("word", 9)
		require.Error(t, err)
		require.Zero(t, n)
	})
}

func TestAccessors_TypeMismatch(t *testing.T) {
	doc, err := janconf.ParseString("g:\n  x: 1\ns: v")
	require.NoError(t, err)

	_, err = doc.Get("g")
	require.ErrorIs(t, err, janconf.ErrTypeMismatch)
	var tm *janconf.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	require.Equal(t, "g", tm.Key)
	require.Equal(t, janconf.KindScalar, tm.Want)
	require.Equal(t, janconf.KindGroup, tm.Got)

	_, err = doc.Int("g")
	require.ErrorIs(t, err, janconf.ErrTypeMismatch)

	s, err := doc.GetOr("g", "d")
	require.ErrorIs(t, err, janconf.ErrTypeMismatch)
	require.Equal(t, "", s)

	_, err = doc.Group("s")
	require.ErrorIs(t, err, janconf.ErrTypeMismatch)
	_, err = doc.GroupSafe("s")
	require.ErrorIs(t, err, janconf.ErrTypeMismatch)

	// Failed reads leave the document untouched.
	require.Equal(t, []string{"g", "s"}, doc.Keys())
}

func TestAccessors_EscapedNewlines(t *testing.T) {
	doc := janconf.New().MustPut("msg", "one\ntwo")
	s, err := doc.Get("msg")
	require.NoError(t, err)
	require.Equal(t, `one\ntwo`, s)
}
