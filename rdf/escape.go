package rdf

import (
	"fmt"
	"strconv"
	"unicode"
)

// unescapeAt decodes the backslash escape sequence starting at pos and
// returns the decoded text plus the number of input bytes consumed.
// Unknown escapes are an error, never passed through.
func unescapeAt(input string, pos int) (string, int, error) {
	if pos+1 >= len(input) {
		return "", 0, fmt.Errorf("unterminated escape")
	}
	switch next := input[pos+1]; next {
	case 'n':
		return "\n", 2, nil
	case 't':
		return "\t", 2, nil
	case 'r':
		return "\r", 2, nil
	case 'b':
		return "\b", 2, nil
	case 'f':
		return "\f", 2, nil
	case '"':
		return "\"", 2, nil
	case '\'':
		return "'", 2, nil
	case '\\':
		return "\\", 2, nil
	case 'u':
		return unescapeUnicode(input, pos, 4)
	case 'U':
		return unescapeUnicode(input, pos, 8)
	default:
		return "", 0, fmt.Errorf("invalid escape sequence \\%c", next)
	}
}

func unescapeUnicode(input string, pos, digits int) (string, int, error) {
	end := pos + 2 + digits
	if end > len(input) {
		return "", 0, fmt.Errorf("unterminated unicode escape")
	}
	value, err := strconv.ParseUint(input[pos+2:end], 16, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid unicode escape")
	}
	// Surrogate code points and values past the Unicode range have no
	// character to decode to.
	if value > unicode.MaxRune || (value >= 0xD800 && value <= 0xDFFF) {
		return "", 0, fmt.Errorf("unicode escape %#x out of range", value)
	}
	return string(rune(value)), 2 + digits, nil
}
