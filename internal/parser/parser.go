package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zerosign/envit/internal/errors"
	"github.com/zerosign/envit/internal/models"
)

// scanState tracks the running classification of ParseLiteral's single
// left-to-right pass over the input.
type scanState int

const (
	stateUnset scanState = iota
	stateInteger
	stateDouble
	stateString
)

// ParseLiteral classifies a trimmed scalar string and parses it into a typed
// literal. Classification order: quoted string, boolean keyword, then a
// single-pass character scan that settles on integer, double or string.
// The string state is absorbing; once reached the input can only be a string.
func ParseLiteral(raw string) (models.Literal, error) {
	if raw == "" {
		return models.Literal{}, errors.NewLiteralError("literal text is empty", errors.ErrEmptyInput)
	}

	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		// Enclosing quotes are stripped and the backslash escapes the
		// quote-aware scan recognizes are decoded; any other backslash
		// is kept verbatim.
		return models.StringOf(unquote(raw[1 : len(raw)-1])), nil
	}

	switch raw {
	case "true":
		return models.BoolOf(true), nil
	case "false":
		return models.BoolOf(false), nil
	}

	state := stateUnset
scan:
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch state {
		case stateUnset:
			switch {
			case c >= '0' && c <= '9':
				state = stateInteger
			case c == '-':
				state = stateInteger
			default:
				state = stateString
			}
		case stateInteger:
			switch {
			case c >= '0' && c <= '9':
				// still an integer
			case c == '.':
				state = stateDouble
			default:
				state = stateString
			}
		case stateDouble:
			if c < '0' || c > '9' {
				// a second '.' or any other character flips to string
				state = stateString
			}
		}
		if state == stateString {
			break scan
		}
	}

	switch state {
	case stateInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Literal{}, errors.NewLiteralError(
				fmt.Sprintf("%q looks like an integer but does not fit a signed 64-bit value", raw),
				errors.ErrNumber,
			)
		}
		return models.IntegerOf(n), nil
	case stateDouble:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Literal{}, errors.NewLiteralError(
				fmt.Sprintf("%q looks like a double but failed to parse", raw),
				errors.ErrNumber,
			)
		}
		return models.DoubleOf(f), nil
	default:
		return models.StringOf(raw), nil
	}
}

// unquote decodes the escapes splitElements honors inside a quoted region:
// \" and \\ become " and \. A backslash before any other character stays.
func unquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// IsArray reports whether raw uses array syntax. Callers fall back to
// ParseLiteral when it does not.
func IsArray(raw string) bool {
	return len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']'
}

// ParseArray parses a bracketed, comma-separated flat array of literals.
// Commas inside quoted elements are not treated as separators; a quote
// preceded by a single backslash does not close the quoted region. Elements
// are trimmed and parsed in textual order.
func ParseArray(raw string) ([]models.Literal, error) {
	if raw == "" {
		return nil, errors.NewArrayError("array text is empty", errors.ErrEmptyInput)
	}
	if !IsArray(raw) {
		return nil, errors.NewArrayError(
			fmt.Sprintf("%q is not array syntax", raw),
			errors.ErrMalformedBrackets,
		)
	}

	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return []models.Literal{}, nil
	}

	segments := splitElements(inner)
	out := make([]models.Literal, 0, len(segments))
	for i, segment := range segments {
		lit, err := ParseLiteral(strings.TrimSpace(segment))
		if err != nil {
			return nil, errors.NewArrayError(
				fmt.Sprintf("element %d is not a valid literal", i),
				err,
			)
		}
		out = append(out, lit)
	}
	return out, nil
}

// splitElements splits the array interior on top-level commas. The scan is
// quote-aware: a comma inside an open quoted region never delimits, and a
// backslash escapes the character that follows it.
func splitElements(s string) []string {
	var parts []string
	start := 0
	inQuote := false
	escaped := false
	for i := 0; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			inQuote = !inQuote
		case s[i] == ',' && !inQuote:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// ParseValue parses one raw value string into a tree value: array syntax is
// tried first, everything else is a scalar literal.
func ParseValue(raw string) (models.Value, error) {
	raw = strings.TrimSpace(raw)
	if IsArray(raw) {
		elems, err := ParseArray(raw)
		if err != nil {
			return nil, err
		}
		return models.Array{Elems: elems}, nil
	}
	lit, err := ParseLiteral(raw)
	if err != nil {
		return nil, err
	}
	return models.Scalar{Literal: lit}, nil
}
