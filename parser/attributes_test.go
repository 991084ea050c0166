package parser

import (
	"testing"
)

type attributeAccuracyTestcase struct {
	inHTML string        // snippet of HTML to tokenize (one element)
	attrs  AttributeList // expected attributes on the first token produced
}

var attributeAccuracyTests = []attributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", AttributeList{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", AttributeList{
		{"href", "https://google.com"},
		{"onclick", "alert(1)"},
	}},
	// duplicate names: last occurrence wins, first position kept
	{"<script src='123' src='456'></script>", AttributeList{
		{"src", "456"},
	}},
	{"<script src=123 onload=test></script>", AttributeList{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script src='123' onload='test' ></script>", AttributeList{
		{"src", "123"},
		{"onload", "test"},
	}},
	{"<script =src='123'onload='test' ></script>", AttributeList{
		{"=src", "123"},
		{"onload", "test"},
	}},
	{"<script src></script>", AttributeList{
		{"src", ""},
	}},
	{"<script src test></script>", AttributeList{
		{"src", ""},
		{"test", ""},
	}},
	{"<script 'asd></script>", AttributeList{
		{"'asd", ""},
	}},
	{"<script ABC=123></script>", AttributeList{
		{"abc", "123"},
	}},
	{"<script abc=></script>", AttributeList{
		{"abc", ""},
	}},
	{"<script\tabc=123></script>", AttributeList{
		{"abc", "123"},
	}},
	// quoted values are entity-decoded, unquoted values are not
	{"<a href='x&amp;y'></a>", AttributeList{
		{"href", "x&y"},
	}},
	{"<a href=\"x&amp;y\"></a>", AttributeList{
		{"href", "x&y"},
	}},
	{"<a href=x&amp;y></a>", AttributeList{
		{"href", "x&amp;y"},
	}},
	// '>' inside a quoted value belongs to the value
	{"<a title='a>b'></a>", AttributeList{
		{"title", "a>b"},
	}},
	// '<' inside a quoted value belongs to the value
	{"<a title='a<b'></a>", AttributeList{
		{"title", "a<b"},
	}},
	// an unclosed quote runs the value to the next tag start
	{"<a href='noterm <b></b>", AttributeList{
		{"href", "noterm "},
	}},
}

// TestAttributeAccuracy makes sure the attribute lexer collects the
// correct names and values, in order.
func TestAttributeAccuracy(t *testing.T) {
	for _, tt := range attributeAccuracyTests {
		runTestAttributeAccuracy(tt, t)
	}
}

func runTestAttributeAccuracy(tt attributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		z := NewTokenizer(tt.inHTML)
		tok := z.Read()
		if tok == nil {
			t.Fatal("expected at least one token")
		}
		if tok.Type != OpenTagToken {
			t.Fatalf("expected an open tag first, got %s", tok.Type)
		}
		if len(tok.Attributes) != len(tt.attrs) {
			t.Fatalf("expected %d attributes, got %d: %v", len(tt.attrs), len(tok.Attributes), tok.Attributes)
		}
		for i, want := range tt.attrs {
			got := tok.Attributes[i]
			if got.Name != want.Name {
				t.Errorf("attribute %d: expected name %q, got %q", i, want.Name, got.Name)
			}
			if got.Value != want.Value {
				t.Errorf("attribute %d (%s): expected value %q, got %q", i, want.Name, want.Value, got.Value)
			}
		}
	})
}

func TestAttributeListGet(t *testing.T) {
	l := AttributeList{{"href", "x"}, {"class", "big"}}
	if v, ok := l.Get("HREF"); !ok || v != "x" {
		t.Errorf("Get is case-insensitive on the lookup name: got %q, %v", v, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Error("expected a miss for an absent attribute")
	}
}

func TestScanAttributesTermination(t *testing.T) {
	tests := []struct {
		in   string // tag interior, scan starts at 0
		term tagTermination
	}{
		{">", termClosed},
		{" a=b>", termClosed},
		{"/>", termSelfClosing},
		{" a='x'/>", termSelfClosing},
		{" <", termNestedTag},
		{" a=b <", termNestedTag},
		{" a=b", termEOF},
		{"", termEOF},
		{" a='never closed", termEOF},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, _, term := scanAttributes([]rune(tt.in), 0)
			if term != tt.term {
				t.Errorf("expected termination %d, got %d", tt.term, term)
			}
		})
	}
}
