// Package parser is a lenient, streaming tag-soup HTML parser. It
// tokenizes arbitrary, frequently malformed real-world HTML into
// discrete markup events and can assemble them into a simple
// document tree. Nothing in this package ever fails on bad markup:
// every truncated tag, unterminated comment, stray close tag and
// unknown entity is resolved by a fixed recovery rule.
package parser

import (
	"io"

	"github.com/pkg/errors"
)

// Options configures a whole-document parsing session. The zero value
// surfaces everything.
type Options struct {
	IgnoreText     bool
	IgnoreComments bool
	TagFilters     []string
}

// Parse tokenizes source and builds the document tree. It never
// fails; an empty source yields an empty document.
func Parse(source string) *Document {
	return ParseWithOptions(source, Options{})
}

// ParseWithOptions is Parse with session configuration applied.
func ParseWithOptions(source string, opts Options) *Document {
	z := NewTokenizer(source)
	z.SetIgnoreText(opts.IgnoreText)
	z.SetIgnoreComments(opts.IgnoreComments)
	for _, name := range opts.TagFilters {
		z.AddTagFilter(name)
	}

	b := NewTreeBuilder()
	for t := z.Read(); t != nil; t = z.Read() {
		b.ProcessToken(*t)
	}
	return b.Finish()
}

// ParseReader drains r and parses its contents. The only failure mode
// is the reader itself.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading parse input")
	}
	return Parse(string(data)), nil
}
