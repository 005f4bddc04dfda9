/*
Package janconf parses and writes JanConf, a small configuration format of
key/value lines, indentation-based groups and comments. The library's API
follows the shape of the standard `encoding/json` package where it can.

A JanConf document looks like this:

	# key comment
	key: value
	# group comment
	group:
	    # enabled comment
	    enabled: false
	    name:
	2dots: ::::::

A line is split at its first ':' into a key and a value, so values may
contain colons. A key whose following line is indented opens a group; the
indented lines form a nested document. Comment lines start with '#' and
belong to the next key. Every scalar is stored as text; numbers and booleans
are interpreted only when read.

The package offers two workflows.

1. Document Manipulation

Parse returns a *Document, an ordered and comment-preserving tree that can be
queried, edited and written back:

	doc, err := janconf.ParseString(src)
	if err != nil {
		// handle error
	}
	port, err := doc.IntOr("port", 8080)
	doc.PutComment("port", "listen port")
	out, err := janconf.Marshal(doc, janconf.Indent(4))

Accessors that find an entry of the wrong kind return a *TypeMismatchError;
typed readers that cannot parse the text return a *FormatError. Both can be
matched with errors.Is against ErrTypeMismatch and ErrFormat.

2. Struct Mapping

Marshal and Unmarshal convert between documents and Go values. Groups map to
structs and maps, scalars to strings, booleans and numbers:

	type Config struct {
		Name  string `janconf:"name"`
		Debug bool   `janconf:"debug,omitempty"`
		DB    struct {
			Host string `janconf:"host"`
		} `janconf:"db"`
	}

	var cfg Config
	if err := janconf.Unmarshal(data, &cfg); err != nil {
		// handle error
	}

Comments are not carried through struct mapping; use a Document to keep them.
*/
package janconf
