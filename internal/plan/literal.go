// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

// The decoder below accepts exactly one grammar: a bracket-delimited list of
// quoted string literals. Model output is untrusted, so anything outside
// that grammar (nested lists, numbers, identifiers, expressions) is
// rejected rather than interpreted.

// DecodeFirstList scans text left to right and decodes the first
// syntactically valid list-literal substring. The second return value is
// false when no such substring exists.
func DecodeFirstList(text string) ([]string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		if items, ok := parseList(text[i:]); ok {
			return items, true
		}
	}
	return nil, false
}

// parseList decodes a list literal at the start of s. It requires the
// opening bracket at position 0 and a matching closing bracket; content must
// be zero or more quoted strings separated by commas, with an optional
// trailing comma.
func parseList(s string) ([]string, bool) {
	p := &parser{src: s}
	if !p.consume('[') {
		return nil, false
	}

	items := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			return items, true
		}

		item, ok := p.parseString()
		if !ok {
			return nil, false
		}
		items = append(items, item)

		p.skipSpace()
		switch {
		case p.consume(','):
			// Next item or trailing comma before ']'.
		case p.consume(']'):
			return items, true
		default:
			return nil, false
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseString decodes one single- or double-quoted string literal with
// backslash escapes. The closing quote must match the opening one.
func (p *parser) parseString() (string, bool) {
	if p.pos >= len(p.src) {
		return "", false
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", false
	}
	p.pos++

	var b []byte
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return string(b), true
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", false
			}
			p.pos++
			b = append(b, unescape(p.src[p.pos]))
			p.pos++
		default:
			b = append(b, c)
			p.pos++
		}
	}
	// Unterminated string.
	return "", false
}

// unescape maps an escaped character to its value. Unknown escapes yield the
// character itself, matching literal-eval semantics closely enough for
// plain prose content.
func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}
