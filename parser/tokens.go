package parser

import "strings"

// TokenType discriminates the markup events a Tokenizer can produce.
type TokenType uint

const (
	OpenTagToken TokenType = iota
	CloseTagToken
	TextToken
	CommentToken
)

func (t TokenType) String() string {
	switch t {
	case OpenTagToken:
		return "OpenTag"
	case CloseTagToken:
		return "CloseTag"
	case TextToken:
		return "Text"
	case CommentToken:
		return "Comment"
	}
	return "Unknown"
}

// Attribute is a single name/value pair scanned from a tag's interior.
// Names are lowercased on commit; values are entity-decoded only when
// the source quoted them.
type Attribute struct {
	Name  string
	Value string
}

// AttributeList keeps attributes in source order. A duplicate name
// keeps the first occurrence's position and takes the last
// occurrence's value.
type AttributeList []Attribute

// Get returns the value for name and whether the attribute exists.
func (l AttributeList) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (l *AttributeList) set(name, value string) {
	for i := range *l {
		if (*l)[i].Name == name {
			(*l)[i].Value = value
			return
		}
	}
	*l = append(*l, Attribute{Name: name, Value: value})
}

// Token is a concrete markup event that is ready to be emitted. A
// Token is immutable once produced; the tokenizer never re-emits or
// mutates one.
type Token struct {
	Type        TokenType
	TagName     string        // OpenTag/CloseTag only, always lowercase
	Attributes  AttributeList // OpenTag only
	Data        string        // Text/Comment content
	SelfClosing bool          // true for <tag ... />; a synthetic CloseTag follows
}

// TokenBuilder builds tag tokens up during the tokenization phase.
type TokenBuilder struct {
	name        strings.Builder
	attributes  AttributeList
	selfClosing bool
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears the builder so the next token starts from a clean
// slate.
func (t *TokenBuilder) Reset() {
	t.name.Reset()
	t.attributes = nil
	t.selfClosing = false
}

// WriteName appends a character to the current tag name.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// SetAttributes installs the attribute list scanned for the current
// tag.
func (t *TokenBuilder) SetAttributes(attrs AttributeList) {
	t.attributes = attrs
}

// EnableSelfClosing changes the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// Name returns the lowercase-normalized tag name built so far.
func (t *TokenBuilder) Name() string {
	return strings.ToLower(t.name.String())
}

// OpenTagToken creates an open tag token from the builder contents.
func (t *TokenBuilder) OpenTagToken() Token {
	return Token{
		Type:        OpenTagToken,
		TagName:     t.Name(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CloseTagToken creates a close tag token from the builder contents.
// Close tags never carry attributes or a self-closing flag.
func (t *TokenBuilder) CloseTagToken() Token {
	return Token{
		Type:    CloseTagToken,
		TagName: t.Name(),
	}
}

func closeTagFor(name string) Token {
	return Token{Type: CloseTagToken, TagName: name}
}

func textTokenFor(data string) Token {
	return Token{Type: TextToken, Data: data}
}

func commentTokenFor(data string) Token {
	return Token{Type: CommentToken, Data: data}
}
