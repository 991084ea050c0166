package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTagFilterStreams(t *testing.T) {
	withFilter := func(names ...string) func(*Tokenizer) {
		return func(z *Tokenizer) {
			for _, n := range names {
				z.AddTagFilter(n)
			}
		}
	}

	tests := []struct {
		name   string
		in     string
		filter []string
		want   []Token
	}{
		{
			"empty filter passes everything",
			"<div><a>x</a></div>",
			nil,
			[]Token{openTag("div"), openTag("a"), text("x"), closeTag("a"), closeTag("div")},
		},
		{
			"top-level match keeps the whole subtree",
			"<a><b>x</b></a>",
			[]string{"a"},
			[]Token{openTag("a"), openTag("b"), text("x"), closeTag("b"), closeTag("a")},
		},
		{
			"unmatched element drops its subtree, in-set descendants included",
			"<div><a href=x>hi</a></div><a>yo</a>",
			[]string{"a"},
			[]Token{openTag("a"), text("yo"), closeTag("a")},
		},
		{
			"filter names are case-insensitive",
			"<A>x</A>",
			[]string{"A"},
			[]Token{openTag("a"), text("x"), closeTag("a")},
		},
		{
			"text outside any kept subtree is dropped",
			"stray<a>kept</a>stray",
			[]string{"a"},
			[]Token{openTag("a"), text("kept"), closeTag("a")},
		},
		{
			"same-name nesting tracked while skipping",
			"<div><div></div><a>no</a></div><a>yes</a>",
			[]string{"a"},
			[]Token{openTag("a"), text("yes"), closeTag("a")},
		},
		{
			"self-closing match",
			"<div></div><br/>",
			[]string{"br"},
			[]Token{selfClosingTag("br"), closeTag("br")},
		},
		{
			"filtered script still balances its raw text",
			"<script>var a = '<div>';</script><a>x</a>",
			[]string{"a"},
			[]Token{openTag("a"), text("x"), closeTag("a")},
		},
		{
			"kept script keeps its body",
			"<div>no</div><script>b</script>",
			[]string{"script"},
			[]Token{openTag("script"), text("b"), closeTag("script")},
		},
		{
			"unclosed skipped element swallows the rest",
			"<div><a>gone</a>",
			[]string{"a"},
			nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tokenize(tt.in, withFilter(tt.filter...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filtered stream mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseWithTagFilters(t *testing.T) {
	doc := ParseWithOptions("<p>skip</p><a href='x'>keep</a><p>more</p>", Options{
		TagFilters: []string{"a"},
	})
	a := doc.FirstElement("a")
	if assert.NotNil(t, a) {
		assert.Equal(t, "x", a.Attr("href"))
		assert.Equal(t, "keep", a.Text())
	}
	assert.Nil(t, doc.FirstElement("p"))

	// an in-set element below an unmatched ancestor goes with it
	doc = ParseWithOptions("<div><a>gone</a></div>", Options{
		TagFilters: []string{"a"},
	})
	assert.Nil(t, doc.FirstElement("a"))
	assert.Empty(t, doc.Root.Children)
}
