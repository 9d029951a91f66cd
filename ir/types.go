package ir

import "fmt"

// ValueType is the effective type of a typed value or table column.
type ValueType int

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeDate
	TypeStringArray
	TypeIntArray
	TypeFloatArray
)

func (t ValueType) String() string {
	s, ok := map[ValueType]string{
		TypeString:      "str",
		TypeInt:         "int",
		TypeFloat:       "float",
		TypeBool:        "bool",
		TypeDate:        "date",
		TypeStringArray: "str[]",
		TypeIntArray:    "int[]",
		TypeFloatArray:  "float[]",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ValueType) UnmarshalText(d []byte) error {
	tt, ok := ParseTypeToken(string(d))
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

// ParseTypeToken maps a declared-type token from source text to a
// ValueType. ok is false for unknown tokens (invalid_declared_type).
func ParseTypeToken(tok string) (ValueType, bool) {
	t, ok := map[string]ValueType{
		"str":     TypeString,
		"int":     TypeInt,
		"float":   TypeFloat,
		"bool":    TypeBool,
		"date":    TypeDate,
		"str[]":   TypeStringArray,
		"int[]":   TypeIntArray,
		"float[]": TypeFloatArray,
	}[tok]
	return t, ok
}

func (t ValueType) IsArray() bool {
	switch t {
	case TypeStringArray, TypeIntArray, TypeFloatArray:
		return true
	default:
		return false
	}
}

// Elem is the element type of an array type; for scalar types it is the
// type itself.
func (t ValueType) Elem() ValueType {
	switch t {
	case TypeStringArray:
		return TypeString
	case TypeIntArray:
		return TypeInt
	case TypeFloatArray:
		return TypeFloat
	default:
		return t
	}
}

// Ascription records whether a type was declared in source or left
// unannotated.
type Ascription int

const (
	Tacit Ascription = iota
	Declared
)

func (a Ascription) String() string {
	if a == Declared {
		return "declared"
	}
	return "tacit"
}

// Semantic is per-node local validity: whether the node itself is
// well-formed per its own coercion rules, descendants aside.
type Semantic int

const (
	Valid Semantic = iota
	Invalid
)

func (s Semantic) String() string {
	if s == Invalid {
		return "invalid"
	}
	return "valid"
}

// Contamination marks a container that depends on at least one invalid
// or contaminated descendant without being malformed itself. It
// propagates upward only, one structural hop per level, and never
// reaches the root.
type Contamination int

const (
	Clean Contamination = iota
	Contaminated
)

func (c Contamination) String() string {
	if c == Contaminated {
		return "contaminated"
	}
	return "clean"
}
