package parser

import "strings"

const whitespaceCutset = " \t\n\r\f"

// Tokenizer is a single-pass, pull-based scanner that turns arbitrary
// tag-soup HTML into a stream of tokens. It never fails: every
// malformed construct is resolved by a documented recovery rule. One
// Tokenizer is bound to one input buffer and is not safe for
// concurrent use.
type Tokenizer struct {
	src     []rune
	cursor  int
	pending []Token
	builder *TokenBuilder
	filter  *tagFilter

	// rawTextName is the open raw-text element ("script" or
	// "style") whose body is being scanned, or "" when outside one.
	rawTextName string

	ignoreText     bool
	ignoreComments bool

	emittedAny bool
	done       bool
}

// NewTokenizer creates a tokenizer over source. The whole input is
// held in memory; the cursor only ever moves forward.
func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{
		src:     []rune(source),
		builder: newTokenBuilder(),
		filter:  newTagFilter(),
	}
}

// SetIgnoreText suppresses Text token emission. Tag state still
// advances normally.
func (z *Tokenizer) SetIgnoreText(v bool) { z.ignoreText = v }

// SetIgnoreComments suppresses Comment token emission.
func (z *Tokenizer) SetIgnoreComments(v bool) { z.ignoreComments = v }

// AddTagFilter adds name to the allow-set. Once any filter is active,
// only elements in the set, plus their subtrees, are surfaced.
func (z *Tokenizer) AddTagFilter(name string) { z.filter.add(name) }

// Read returns the next token, or nil once the input is exhausted.
// Reading past the end keeps returning nil.
func (z *Tokenizer) Read() *Token {
	for {
		if len(z.pending) > 0 {
			t := z.pending[0]
			z.pending = z.pending[1:]
			return &t
		}
		if z.done {
			return nil
		}
		z.step()
	}
}

// step advances the scan far enough to either emit at least one token
// or reach the end of the input.
func (z *Tokenizer) step() {
	if z.rawTextName != "" {
		z.scanRawText()
		return
	}
	if z.cursor >= len(z.src) {
		z.done = true
		return
	}
	if z.src[z.cursor] == '<' {
		z.scanMarkup()
		return
	}
	z.scanText()
}

// emit runs tokens through the tag filter and the ignore switches and
// queues the survivors for delivery.
func (z *Tokenizer) emit(tokens ...Token) {
	z.emittedAny = true
	for _, t := range tokens {
		if !z.filter.admit(t) {
			continue
		}
		if z.ignoreText && t.Type == TextToken {
			continue
		}
		if z.ignoreComments && t.Type == CommentToken {
			continue
		}
		z.pending = append(z.pending, t)
	}
}

// scanText coalesces a run of non-tag characters into a single Text
// token. Line endings are normalized to CRLF and entities decoded;
// pure whitespace at the very start or end of the document is
// trimmed.
func (z *Tokenizer) scanText() {
	start := z.cursor
	for z.cursor < len(z.src) && z.src[z.cursor] != '<' {
		z.cursor++
	}
	raw := string(z.src[start:z.cursor])
	if !z.emittedAny {
		raw = strings.TrimLeft(raw, whitespaceCutset)
	}
	if z.cursor >= len(z.src) {
		raw = strings.TrimRight(raw, whitespaceCutset)
	}
	if raw == "" {
		return
	}
	z.emit(textTokenFor(DecodeEntities(normalizeNewlines(raw))))
}

// scanMarkup dispatches on the character after a '<'.
func (z *Tokenizer) scanMarkup() {
	if z.cursor+1 >= len(z.src) {
		// lone '<' at end of input: swallowed
		z.cursor = len(z.src)
		return
	}
	switch r := z.src[z.cursor+1]; {
	case r == '/':
		z.scanCloseTag()
	case r == '!':
		z.scanDeclaration()
	case isTagNameStart(r):
		z.scanOpenTag()
	default:
		// '<' with no recognizable start character produces no
		// token; a directly following '>' is swallowed with it
		z.cursor++
		if z.src[z.cursor] == '>' {
			z.cursor++
		}
	}
}

// scanOpenTag reads a tag name and hands the rest of the tag interior
// to the attribute lexer. Self-closing tags synthesize an immediate
// matching CloseTag; script and style switch the scanner into
// raw-text mode.
func (z *Tokenizer) scanOpenTag() {
	z.builder.Reset()
	i := z.cursor + 1
	for i < len(z.src) && !isWhitespace(z.src[i]) && !isNameDelimiter(z.src[i]) {
		z.builder.WriteName(z.src[i])
		i++
	}

	attrs, next, term := scanAttributes(z.src, i)
	if term == termEOF {
		// input ran out inside the tag: the whole tag is dropped
		// and no further tokens are produced
		z.cursor = len(z.src)
		z.done = true
		return
	}
	// termNestedTag leaves next pointing at the fresh '<'; the tag
	// is closed off with whatever was parsed so far
	z.cursor = next

	if term == termSelfClosing {
		z.builder.EnableSelfClosing()
	}
	z.builder.SetAttributes(attrs)
	tok := z.builder.OpenTagToken()
	z.emit(tok)
	if tok.SelfClosing {
		z.emit(closeTagFor(tok.TagName))
		return
	}
	if tok.TagName == "script" || tok.TagName == "style" {
		z.rawTextName = tok.TagName
	}
}

// scanCloseTag reads an end tag. Anything between the name and the
// '>' is skipped; an empty name produces no token.
func (z *Tokenizer) scanCloseTag() {
	z.builder.Reset()
	i := z.cursor + 2
	for i < len(z.src) && !isWhitespace(z.src[i]) && z.src[i] != '>' && z.src[i] != '<' {
		z.builder.WriteName(z.src[i])
		i++
	}
	for i < len(z.src) && z.src[i] != '>' && z.src[i] != '<' {
		i++
	}
	if i >= len(z.src) {
		// truncated close tag: dropped, and the stream ends here
		z.cursor = len(z.src)
		z.done = true
		return
	}
	if z.src[i] == '<' {
		z.cursor = i
	} else {
		z.cursor = i + 1
	}
	if z.builder.Name() != "" {
		z.emit(z.builder.CloseTagToken())
	}
}

// scanDeclaration handles everything that starts with "<!".
func (z *Tokenizer) scanDeclaration() {
	rest := z.src[z.cursor:]
	switch {
	case matchAt(rest, "<!--"):
		z.scanComment()
	case matchAt(rest, "<![CDATA["):
		z.scanCDATA()
	case matchAtFold(rest, "<!doctype"):
		z.scanDoctype()
	case matchAt(rest, "<!["):
		z.scanMarkedSection()
	default:
		z.skipBogusDeclaration()
	}
}

// scanComment emits the raw text between "<!--" and the first "-->".
// A missing terminator turns the rest of the input into the comment.
func (z *Tokenizer) scanComment() {
	start := z.cursor + len("<!--")
	if idx := indexFrom(z.src, start, "-->"); idx >= 0 {
		z.cursor = idx + len("-->")
		z.emit(commentTokenFor(string(z.src[start:idx])))
		return
	}
	z.cursor = len(z.src)
	z.emit(commentTokenFor(string(z.src[start:])))
}

// scanCDATA emits the section body as literal text, tolerating a
// missing "]]>" by consuming to end of input, trailing partial
// delimiter characters included.
func (z *Tokenizer) scanCDATA() {
	start := z.cursor + len("<![CDATA[")
	var body string
	if idx := indexFrom(z.src, start, "]]>"); idx >= 0 {
		body = string(z.src[start:idx])
		z.cursor = idx + len("]]>")
	} else {
		body = string(z.src[start:])
		z.cursor = len(z.src)
	}
	if body != "" {
		z.emit(textTokenFor(body))
	}
}

// scanMarkedSection discards an SGML marked section wholesale. IGNORE
// and INCLUDE are treated identically: both drop their contents.
func (z *Tokenizer) scanMarkedSection() {
	i := z.cursor + len("<![")
	for i < len(z.src) && z.src[i] != '[' && z.src[i] != '>' {
		i++
	}
	if i >= len(z.src) || z.src[i] != '[' {
		z.skipBogusDeclaration()
		return
	}
	if idx := indexFrom(z.src, i+1, "]]>"); idx >= 0 {
		z.cursor = idx + len("]]>")
		return
	}
	z.cursor = len(z.src)
}

// scanDoctype synthesizes <!DOCTYPE ...> as an open "doctype" tag, a
// literal text token, and a matching close tag.
func (z *Tokenizer) scanDoctype() {
	start := z.cursor + len("<!doctype")
	i := start
	for i < len(z.src) && z.src[i] != '>' {
		i++
	}
	data := string(z.src[start:i])
	if i < len(z.src) {
		z.cursor = i + 1
	} else {
		z.cursor = len(z.src)
	}
	z.emit(Token{Type: OpenTagToken, TagName: "doctype"}, textTokenFor(data), closeTagFor("doctype"))
}

// skipBogusDeclaration swallows an unrecognized "<!" construct up to
// the next '>' without emitting anything.
func (z *Tokenizer) skipBogusDeclaration() {
	i := z.cursor + 2
	for i < len(z.src) && z.src[i] != '>' && z.src[i] != '<' {
		i++
	}
	if i >= len(z.src) {
		z.cursor = len(z.src)
		return
	}
	if z.src[i] == '<' {
		z.cursor = i
		return
	}
	z.cursor = i + 1
}

// scanRawText consumes the body of an open script or style element as
// one verbatim Text token: no entity decoding, no newline
// normalization, no nested tag interpretation. When the matching
// close sequence never appears, the rest of the input becomes the
// body and a synthetic CloseTag keeps the pair balanced.
func (z *Tokenizer) scanRawText() {
	name := z.rawTextName
	z.rawTextName = ""
	idx := indexFoldFrom(z.src, z.cursor, "</"+name)
	if idx < 0 {
		body := string(z.src[z.cursor:])
		z.cursor = len(z.src)
		z.done = true
		z.emit(textTokenFor(body), closeTagFor(name))
		return
	}
	body := string(z.src[z.cursor:idx])
	z.cursor = idx
	// the close tag itself is scanned as an ordinary end tag
	z.emit(textTokenFor(body))
}

func isTagNameStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// matchAt reports whether src begins with lit.
func matchAt(src []rune, lit string) bool {
	if len(src) < len(lit) {
		return false
	}
	for i, c := range lit {
		if src[i] != c {
			return false
		}
	}
	return true
}

// matchAtFold is matchAt with ASCII case folding.
func matchAtFold(src []rune, lit string) bool {
	if len(src) < len(lit) {
		return false
	}
	for i, c := range lit {
		if toLowerRune(src[i]) != toLowerRune(c) {
			return false
		}
	}
	return true
}

// indexFrom returns the index of the first occurrence of lit in src
// at or after start, or -1.
func indexFrom(src []rune, start int, lit string) int {
	for i := start; i+len(lit) <= len(src); i++ {
		if matchAt(src[i:], lit) {
			return i
		}
	}
	return -1
}

// indexFoldFrom is indexFrom with ASCII case folding.
func indexFoldFrom(src []rune, start int, lit string) int {
	for i := start; i+len(lit) <= len(src); i++ {
		if matchAtFold(src[i:], lit) {
			return i
		}
	}
	return -1
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// normalizeNewlines collapses \r\n, \r and \n runs in text to a
// single CRLF each.
func normalizeNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			b.WriteString("\r\n")
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
			b.WriteString("\r\n")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
