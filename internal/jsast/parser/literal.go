package parser

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// stringValue decodes a string literal. Escapes are decoded to UTF-16 code
// units first so that surrogate pairs written as two escapes combine.
func (c *converter) stringValue(n *sitter.Node) string {
	var units []uint16

	for i := range int(n.ChildCount()) {
		ch := n.Child(i)

		switch ch.Type() {
		case "escape_sequence":
			units = append(units, escapeUnits(c.text(ch))...)
		case "string_fragment", "html_character_reference":
			units = append(units, utf16.Encode([]rune(c.text(ch)))...)
		}
	}

	return string(utf16.Decode(units))
}

var simpleEscapes = map[byte]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'b': '\b',
	'f': '\f',
	'v': '\v',
	'0': 0,
}

func escapeUnits(esc string) []uint16 {
	if len(esc) < 2 {
		return nil
	}

	body := esc[1:]

	switch body[0] {
	case '\n', '\r':
		return nil
	case 'x':
		if v, err := strconv.ParseUint(body[1:], 16, 16); err == nil {
			return []uint16{uint16(v)}
		}
	case 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			if v > 0xFFFF {
				return utf16.Encode([]rune{rune(v)})
			}

			return []uint16{uint16(v)}
		}
	}

	if r, ok := simpleEscapes[body[0]]; ok && len(body) == 1 {
		return []uint16{uint16(r)}
	}

	r, _ := utf8.DecodeRuneInString(body)
	if r == '\u2028' || r == '\u2029' {
		return nil
	}

	return utf16.Encode([]rune{r})
}

// numberValue evaluates a numeric literal. BigInt literals keep their
// numeric value without the suffix.
func numberValue(raw string) float64 {
	s := strings.TrimSuffix(strings.ReplaceAll(raw, "_", ""), "n")

	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(v)
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	return 0
}
