package parser

import "strings"

// tagTermination reports how the scan of a tag's interior ended.
type tagTermination uint

const (
	// termClosed means the scan consumed the tag's closing '>'.
	termClosed tagTermination = iota
	// termSelfClosing means the scan consumed a closing '/>'.
	termSelfClosing
	// termNestedTag means a fresh '<' appeared inside the tag body.
	// The scan stops just before it so the tokenizer can restart
	// there; whatever was parsed so far stands.
	termNestedTag
	// termEOF means the input ran out before the tag was closed.
	termEOF
)

// scanAttributes scans a tag's interior for name=value pairs,
// starting at pos (just past the tag name) and ending at the tag's
// terminating '>' or '/>'. It returns the attributes in source order,
// the index of the first rune after the scan, and how the scan
// terminated.
//
// The grammar is deliberately loose: quoted values (double- or single-quoted) are
// entity-decoded, unquoted values are taken verbatim, a name with no
// '=' gets an empty value, and a duplicate name takes the last value
// seen. A quote that never closes falls back to running the value to
// the next '<' or to end of input.
func scanAttributes(src []rune, pos int) (AttributeList, int, tagTermination) {
	var attrs AttributeList
	i := pos
	for {
		for i < len(src) && isWhitespace(src[i]) {
			i++
		}
		if i >= len(src) {
			return attrs, i, termEOF
		}
		switch src[i] {
		case '>':
			return attrs, i + 1, termClosed
		case '<':
			return attrs, i, termNestedTag
		case '/':
			if i+1 < len(src) && src[i+1] == '>' {
				return attrs, i + 2, termSelfClosing
			}
			i++
			continue
		}

		var name strings.Builder
		// a stray leading '=' folds into the attribute name
		if src[i] == '=' {
			name.WriteRune('=')
			i++
		}
		for i < len(src) && !isWhitespace(src[i]) && !isNameDelimiter(src[i]) {
			name.WriteRune(src[i])
			i++
		}

		for i < len(src) && isWhitespace(src[i]) {
			i++
		}
		if i >= len(src) || src[i] != '=' {
			// valueless attribute, e.g. <input disabled>
			commitAttribute(&attrs, name.String(), "")
			continue
		}
		i++ // consume '='
		for i < len(src) && isWhitespace(src[i]) {
			i++
		}

		value, next := scanAttributeValue(src, i)
		i = next
		commitAttribute(&attrs, name.String(), value)
	}
}

// scanAttributeValue reads one attribute value starting at i (the
// rune right after '=' and any whitespace). It returns the decoded
// value and the index after it. Tag terminators are left unconsumed
// for the caller's main loop.
func scanAttributeValue(src []rune, i int) (string, int) {
	if i >= len(src) {
		return "", i
	}
	switch src[i] {
	case '>', '<':
		// stray '=' with nothing after it
		return "", i
	case '"', '\'':
		quote := src[i]
		for j := i + 1; j < len(src); j++ {
			if src[j] == quote {
				return DecodeEntities(string(src[i+1 : j])), j + 1
			}
		}
		// no closing quote anywhere: the value runs to the next
		// tag start or to end of input
		j := i + 1
		for j < len(src) && src[j] != '<' {
			j++
		}
		return DecodeEntities(string(src[i+1 : j])), j
	default:
		// unquoted values are passed through without entity
		// decoding to match the historical behavior
		j := i
		for j < len(src) && !isWhitespace(src[j]) && src[j] != '>' && src[j] != '<' {
			j++
		}
		return string(src[i:j]), j
	}
}

func commitAttribute(attrs *AttributeList, name, value string) {
	if name == "" {
		return
	}
	attrs.set(strings.ToLower(name), value)
}

func isNameDelimiter(r rune) bool {
	switch r {
	case '=', '/', '>', '<':
		return true
	}
	return false
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
