package temperature

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse reads a "<number><scale>" string such as "-10.5C" or "98.6f".
//
// The numeric part is checked before the scale letter, so a lone scale
// letter ("c") fails with an empty InvalidNumber rather than UnknownScale.
// Negative zero is normalized so "-0c" behaves exactly like "0c".
func Parse(input string) (Reading, error) {
	if input == "" {
		return Reading{}, &ParseError{Kind: KindEmptyInput}
	}

	last, size := utf8.DecodeLastRuneInString(input)
	numeric := input[:len(input)-size]

	value, err := parseNumber(numeric)
	if err != nil {
		return Reading{}, err
	}

	scale, ok := scaleFromRune(last)
	if !ok {
		return Reading{}, &ParseError{Kind: KindUnknownScale, ScaleRune: last}
	}

	return Reading{Scale: scale, Value: value}, nil
}

func parseNumber(numeric string) (float32, error) {
	if !isDecimal(numeric) {
		if strings.IndexFunc(numeric, unicode.IsSpace) >= 0 {
			return 0, &ParseError{Kind: KindContainsSpace, Text: numeric}
		}
		return 0, &ParseError{Kind: KindInvalidNumber, Text: numeric}
	}

	f, err := strconv.ParseFloat(numeric, 32)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &ParseError{Kind: KindInvalidNumber, Text: numeric}
	}

	v := float32(f)
	if v == 0 {
		// drop the sign bit of -0
		v = 0
	}
	return v, nil
}

// isDecimal reports whether s is a plain decimal number: an optional sign,
// digits with an optional fraction, and an optional exponent. Hex floats,
// underscores, inf and nan are not decimal.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for ; i < len(s) && isDigit(s[i]); i++ {
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ParseAndConvert runs Parse followed by Convert.
func ParseAndConvert(input string) (Conversion, error) {
	r, err := Parse(input)
	if err != nil {
		return Conversion{}, err
	}
	return Convert(r), nil
}
