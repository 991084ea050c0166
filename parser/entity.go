package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxEntityNameLen bounds the lookahead when scanning for a named
// character reference. Anything longer than the longest HTML4 name is
// treated as plain text.
const maxEntityNameLen = 10

// DecodeEntities replaces &name;, &#NN; and &#xHH; references in s
// with their literal characters. Unterminated or unrecognized
// references pass through verbatim; many real pages carry bare
// ampersands in query strings and must survive a parse unchanged. The
// function is total over all string inputs.
func DecodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		rep, n := decodeEntity(s[i:])
		if n == 0 {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(rep)
		i += n
	}
	return b.String()
}

// decodeEntity attempts to decode one character reference at the
// start of s (s[0] is '&'). It returns the replacement text and the
// number of source bytes consumed, or ("", 0) when s does not begin
// with a recognizable reference.
func decodeEntity(s string) (string, int) {
	if len(s) < 2 {
		return "", 0
	}
	if s[1] == '#' {
		return decodeNumericEntity(s)
	}

	j := 1
	for j < len(s) && j <= maxEntityNameLen {
		c := s[j]
		if c == ';' {
			break
		}
		if !isEntityNameByte(c) {
			return "", 0
		}
		j++
	}
	if j >= len(s) || j > maxEntityNameLen || s[j] != ';' || j == 1 {
		return "", 0
	}

	name := s[1:j]
	r, ok := namedEntities[name]
	if !ok {
		// entity names are matched case-insensitively as a
		// fallback, so &AMP; still decodes
		r, ok = namedEntities[strings.ToLower(name)]
	}
	if !ok {
		return "", 0
	}
	return string(r), j + 1
}

func decodeNumericEntity(s string) (string, int) {
	j := 2
	base := 10
	if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
		base = 16
		j++
	}
	start := j
	for j < len(s) && isDigitByte(s[j], base) {
		j++
	}
	if j == start || j >= len(s) || s[j] != ';' {
		return "", 0
	}
	code, err := strconv.ParseInt(s[start:j], base, 32)
	if err != nil {
		return "", 0
	}
	r := rune(code)
	// zero, surrogate and out-of-range references pass through raw
	// rather than turning into replacement characters
	if r <= 0 || !utf8.ValidRune(r) {
		return "", 0
	}
	return string(r), j + 1
}

func isEntityNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isDigitByte(c byte, base int) bool {
	if base == 16 {
		return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	}
	return c >= '0' && c <= '9'
}

// namedEntities is the HTML4 named character reference table plus
// apos, which XHTML-era pages use freely. Read-only after init.
var namedEntities = map[string]rune{
	"quot": '"', "amp": '&', "apos": '\'', "lt": '<', "gt": '>',

	// Latin-1
	"nbsp": ' ', "iexcl": '¡', "cent": '¢', "pound": '£',
	"curren": '¤', "yen": '¥', "brvbar": '¦', "sect": '§',
	"uml": '¨', "copy": '©', "ordf": 'ª', "laquo": '«',
	"not": '¬', "shy": '­', "reg": '®', "macr": '¯',
	"deg": '°', "plusmn": '±', "sup2": '²', "sup3": '³',
	"acute": '´', "micro": 'µ', "para": '¶', "middot": '·',
	"cedil": '¸', "sup1": '¹', "ordm": 'º', "raquo": '»',
	"frac14": '¼', "frac12": '½', "frac34": '¾', "iquest": '¿',
	"Agrave": 'À', "Aacute": 'Á', "Acirc": 'Â', "Atilde": 'Ã',
	"Auml": 'Ä', "Aring": 'Å', "AElig": 'Æ', "Ccedil": 'Ç',
	"Egrave": 'È', "Eacute": 'É', "Ecirc": 'Ê', "Euml": 'Ë',
	"Igrave": 'Ì', "Iacute": 'Í', "Icirc": 'Î', "Iuml": 'Ï',
	"ETH": 'Ð', "Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
	"Ocirc": 'Ô', "Otilde": 'Õ', "Ouml": 'Ö', "times": '×',
	"Oslash": 'Ø', "Ugrave": 'Ù', "Uacute": 'Ú', "Ucirc": 'Û',
	"Uuml": 'Ü', "Yacute": 'Ý', "THORN": 'Þ', "szlig": 'ß',
	"agrave": 'à', "aacute": 'á', "acirc": 'â', "atilde": 'ã',
	"auml": 'ä', "aring": 'å', "aelig": 'æ', "ccedil": 'ç',
	"egrave": 'è', "eacute": 'é', "ecirc": 'ê', "euml": 'ë',
	"igrave": 'ì', "iacute": 'í', "icirc": 'î', "iuml": 'ï',
	"eth": 'ð', "ntilde": 'ñ', "ograve": 'ò', "oacute": 'ó',
	"ocirc": 'ô', "otilde": 'õ', "ouml": 'ö', "divide": '÷',
	"oslash": 'ø', "ugrave": 'ù', "uacute": 'ú', "ucirc": 'û',
	"uuml": 'ü', "yacute": 'ý', "thorn": 'þ', "yuml": 'ÿ',

	// Latin Extended and friends
	"OElig": 'Œ', "oelig": 'œ', "Scaron": 'Š', "scaron": 'š',
	"Yuml": 'Ÿ', "fnof": 'ƒ', "circ": 'ˆ', "tilde": '˜',

	// Greek
	"Alpha": 'Α', "Beta": 'Β', "Gamma": 'Γ', "Delta": 'Δ',
	"Epsilon": 'Ε', "Zeta": 'Ζ', "Eta": 'Η', "Theta": 'Θ',
	"Iota": 'Ι', "Kappa": 'Κ', "Lambda": 'Λ', "Mu": 'Μ',
	"Nu": 'Ν', "Xi": 'Ξ', "Omicron": 'Ο', "Pi": 'Π',
	"Rho": 'Ρ', "Sigma": 'Σ', "Tau": 'Τ', "Upsilon": 'Υ',
	"Phi": 'Φ', "Chi": 'Χ', "Psi": 'Ψ', "Omega": 'Ω',
	"alpha": 'α', "beta": 'β', "gamma": 'γ', "delta": 'δ',
	"epsilon": 'ε', "zeta": 'ζ', "eta": 'η', "theta": 'θ',
	"iota": 'ι', "kappa": 'κ', "lambda": 'λ', "mu": 'μ',
	"nu": 'ν', "xi": 'ξ', "omicron": 'ο', "pi": 'π',
	"rho": 'ρ', "sigmaf": 'ς', "sigma": 'σ', "tau": 'τ',
	"upsilon": 'υ', "phi": 'φ', "chi": 'χ', "psi": 'ψ',
	"omega": 'ω', "thetasym": 'ϑ', "upsih": 'ϒ', "piv": 'ϖ',

	// punctuation
	"ensp": ' ', "emsp": ' ', "thinsp": ' ', "zwnj": '‌',
	"zwj": '‍', "lrm": '‎', "rlm": '‏', "ndash": '–',
	"mdash": '—', "lsquo": '‘', "rsquo": '’', "sbquo": '‚',
	"ldquo": '“', "rdquo": '”', "bdquo": '„', "dagger": '†',
	"Dagger": '‡', "bull": '•', "hellip": '…', "permil": '‰',
	"prime": '′', "Prime": '″', "lsaquo": '‹', "rsaquo": '›',
	"oline": '‾', "frasl": '⁄', "euro": '€',

	// letterlike and arrows
	"image": 'ℑ', "weierp": '℘', "real": 'ℜ', "trade": '™',
	"alefsym": 'ℵ', "larr": '←', "uarr": '↑', "rarr": '→',
	"darr": '↓', "harr": '↔', "crarr": '↵', "lArr": '⇐',
	"uArr": '⇑', "rArr": '⇒', "dArr": '⇓', "hArr": '⇔',

	// mathematical operators
	"forall": '∀', "part": '∂', "exist": '∃', "empty": '∅',
	"nabla": '∇', "isin": '∈', "notin": '∉', "ni": '∋',
	"prod": '∏', "sum": '∑', "minus": '−', "lowast": '∗',
	"radic": '√', "prop": '∝', "infin": '∞', "ang": '∠',
	"and": '∧', "or": '∨', "cap": '∩', "cup": '∪',
	"int": '∫', "there4": '∴', "sim": '∼', "cong": '≅',
	"asymp": '≈', "ne": '≠', "equiv": '≡', "le": '≤',
	"ge": '≥', "sub": '⊂', "sup": '⊃', "nsub": '⊄',
	"sube": '⊆', "supe": '⊇', "oplus": '⊕', "otimes": '⊗',
	"perp": '⊥', "sdot": '⋅',

	// technical and shapes
	"lceil": '⌈', "rceil": '⌉', "lfloor": '⌊', "rfloor": '⌋',
	"lang": '〈', "rang": '〉', "loz": '◊', "spades": '♠',
	"clubs": '♣', "hearts": '♥', "diams": '♦',
}
