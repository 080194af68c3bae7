package models

import "strconv"

// LiteralKind discriminates the scalar variants a raw value string can be
// classified into.
type LiteralKind int

const (
	IntegerLiteral LiteralKind = iota
	DoubleLiteral
	StringLiteral
	BoolLiteral
)

// String returns a human-readable name for the kind, used in error messages.
func (k LiteralKind) String() string {
	switch k {
	case IntegerLiteral:
		return "integer"
	case DoubleLiteral:
		return "double"
	case StringLiteral:
		return "string"
	case BoolLiteral:
		return "bool"
	default:
		return "unknown"
	}
}

// Literal is one parsed scalar value. Only the field selected by Kind is
// meaningful; the remaining fields keep their zero values. A Literal is
// immutable once produced by the parser.
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// IntegerOf builds an integer literal.
func IntegerOf(v int64) Literal {
	return Literal{Kind: IntegerLiteral, Int: v}
}

// DoubleOf builds a floating point literal.
func DoubleOf(v float64) Literal {
	return Literal{Kind: DoubleLiteral, Float: v}
}

// StringOf builds a string literal.
func StringOf(v string) Literal {
	return Literal{Kind: StringLiteral, Str: v}
}

// BoolOf builds a boolean literal.
func BoolOf(v bool) Literal {
	return Literal{Kind: BoolLiteral, Bool: v}
}

// Interface returns the literal as a plain Go value (int64, float64, string
// or bool), which is what the decoding adapter and JSON output consume.
func (l Literal) Interface() interface{} {
	switch l.Kind {
	case IntegerLiteral:
		return l.Int
	case DoubleLiteral:
		return l.Float
	case BoolLiteral:
		return l.Bool
	default:
		return l.Str
	}
}

// Text renders the canonical unquoted text of the literal. Re-parsing the
// text of an integer, double or bool literal yields an equal literal; doubles
// always carry a decimal point so they never reclassify as integers. String
// payloads are returned verbatim, quoting is the serializer's concern.
func (l Literal) Text() string {
	switch l.Kind {
	case IntegerLiteral:
		return strconv.FormatInt(l.Int, 10)
	case DoubleLiteral:
		s := strconv.FormatFloat(l.Float, 'f', -1, 64)
		if !hasDot(s) {
			s += ".0"
		}
		return s
	case BoolLiteral:
		return strconv.FormatBool(l.Bool)
	default:
		return l.Str
	}
}

func hasDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// ValueKind discriminates the node variants of an assembled tree.
type ValueKind int

const (
	ScalarValue ValueKind = iota
	ArrayValue
	ObjectValue
)

// String returns a human-readable name for the kind, used in error messages.
func (k ValueKind) String() string {
	switch k {
	case ScalarValue:
		return "scalar"
	case ArrayValue:
		return "array"
	case ObjectValue:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of the assembled tree: a Scalar leaf, a flat Array of
// literals, or an Object mapping path segments to child values. Arrays never
// contain arrays or objects; that is structural, the parser only ever
// produces literals for array elements.
type Value interface {
	Kind() ValueKind
}

// Scalar is a leaf holding a single literal.
type Scalar struct {
	Literal Literal
}

// Kind implements Value.
func (Scalar) Kind() ValueKind { return ScalarValue }

// Array is a leaf holding an ordered, flat sequence of literals.
type Array struct {
	Elems []Literal
}

// Kind implements Value.
func (Array) Kind() ValueKind { return ArrayValue }

// Object maps path segments to child values. Keys are unique; insertion
// order is not significant.
type Object struct {
	Items map[string]Value
}

// NewObject creates an empty object node.
func NewObject() *Object {
	return &Object{Items: make(map[string]Value)}
}

// Kind implements Value.
func (*Object) Kind() ValueKind { return ObjectValue }
