// Package lexspan implements the tagged-span lexer that sits below
// the parser combinators (spec §4.1): it turns raw text into a stream
// of classified spans, and a Filter narrows that stream down to the
// view a parser actually wants to see (e.g. semicolons and quoted
// strings, with everything else opaque) without forcing every
// consumer to re-implement comment/whitespace/string skipping.
package lexspan

// Kind classifies a lexed span.
type Kind int

const (
	Ident Kind = iota
	Number
	String
	Punct
	Whitespace
	Comment
)

// Token is one classified span of source text.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// Lex splits src into a flat token stream. It is intentionally coarse
// (Atma's grammar is small): runs of identifier characters, runs of
// digits, quoted strings, single punctuation characters, whitespace
// runs, and '#' line comments.
func Lex(src string) []Token {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			j := i
			for j < len(src) && (src[j] == ' ' || src[j] == '\t' || src[j] == '\r' || src[j] == '\n') {
				j++
			}
			toks = append(toks, Token{Kind: Whitespace, Text: src[i:j], Start: i, End: j})
			i = j
		case c == '#':
			j := i
			for j < len(src) && src[j] != '\n' {
				j++
			}
			toks = append(toks, Token{Kind: Comment, Text: src[i:j], Start: i, End: j})
			i = j
		case c == '\'' || c == '"':
			j := i + 1
			for j < len(src) && src[j] != c {
				if src[j] == '\\' && j+1 < len(src) {
					j++
				}
				j++
			}
			if j < len(src) {
				j++
			}
			toks = append(toks, Token{Kind: String, Text: src[i:j], Start: i, End: j})
			i = j
		case isDigit(c):
			j := i
			for j < len(src) && (isDigit(src[j]) || src[j] == '.' || src[j] == '_' ||
				src[j] == 'x' || src[j] == 'b' || src[j] == 'o' ||
				isHexLetter(src[j])) {
				j++
			}
			toks = append(toks, Token{Kind: Number, Text: src[i:j], Start: i, End: j})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, Token{Kind: Ident, Text: src[i:j], Start: i, End: j})
			i = j
		default:
			toks = append(toks, Token{Kind: Punct, Text: src[i : i+1], Start: i, End: i + 1})
			i++
		}
	}
	return toks
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexLetter(c byte) bool  { return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-' || c == '.' || c == '*'
}

// Filter narrows a token stream. Filters compose by wrapping one
// another (f2(f1(tokens))).
type Filter func([]Token) []Token

// SkipKinds drops every token whose Kind is in kinds.
func SkipKinds(kinds ...Kind) Filter {
	set := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return func(toks []Token) []Token {
		out := make([]Token, 0, len(toks))
		for _, t := range toks {
			if !set[t.Kind] {
				out = append(out, t)
			}
		}
		return out
	}
}

// Compose chains filters left to right.
func Compose(filters ...Filter) Filter {
	return func(toks []Token) []Token {
		for _, f := range filters {
			toks = f(toks)
		}
		return toks
	}
}

// SignificantOnly drops whitespace and comments, the filtered view
// parser combinators are meant to consume per spec §4.1.
var SignificantOnly = SkipKinds(Whitespace, Comment)
