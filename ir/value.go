package ir

import (
	"strconv"
	"strings"
)

// Value is the tagged union over string, int, float, bool and
// array-of-values, together with its type provenance, validity and
// contamination state. The payload field in use is selected by Type
// (Elems for array types, the scalar fields otherwise).
type Value struct {
	Type          ValueType
	Ascription    Ascription
	Semantic      Semantic
	Contamination Contamination

	// DeclaredType retains the authored intent when Ascription is
	// Declared, even after a failed coercion collapsed Type to string.
	DeclaredType ValueType

	// Source is the original literal text, present only for values
	// materialized from source. Edited values lose it so that a
	// serializer reconstructs instead of echoing.
	Source    string
	HasSource bool
	Edited    bool

	// Missing marks an empty array element placeholder: valid, absent,
	// non-contaminating.
	Missing bool

	Str   string
	Int   int64
	Float float64
	Bool  bool
	Elems []Value
}

// TacitValue materializes an unannotated literal: effective type
// string, always valid. Delimiter characters are inert without a
// declared array type.
func TacitValue(lit string) Value {
	return Value{
		Type:      TypeString,
		Str:       lit,
		Source:    lit,
		HasSource: true,
	}
}

// DeclaredValue materializes a literal under a declared type.
// A scalar literal that does not coerce collapses the effective type to
// string, keeps the literal verbatim and marks the value invalid; the
// ascription stays declared. Array coercion never fails as a whole:
// empty elements become missing placeholders and failing elements are
// individually invalidated, contaminating (not invalidating) the owner.
func DeclaredValue(lit string, t ValueType) Value {
	v := Value{
		Type:         t,
		Ascription:   Declared,
		DeclaredType: t,
		Source:       lit,
		HasSource:    true,
	}
	if t.IsArray() {
		coerceArray(&v, lit, t.Elem())
		return v
	}
	if !coerceScalar(&v, lit, t) {
		v.Type = TypeString
		v.Str = lit
		v.Semantic = Invalid
	}
	return v
}

func coerceScalar(v *Value, lit string, t ValueType) bool {
	switch t {
	case TypeString, TypeDate:
		v.Str = lit
		return true
	case TypeInt:
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return false
		}
		v.Int = i
		return true
	case TypeFloat:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return false
		}
		v.Float = f
		return true
	case TypeBool:
		switch strings.ToLower(lit) {
		case "true", "yes", "1":
			v.Bool = true
			return true
		case "false", "no", "0":
			v.Bool = false
			return true
		}
		return false
	}
	return false
}

func coerceArray(v *Value, lit string, elem ValueType) {
	parts := strings.Split(lit, "|")
	v.Elems = make([]Value, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		ev := Value{
			Type:         elem,
			Ascription:   Declared,
			DeclaredType: elem,
			Source:       part,
			HasSource:    true,
		}
		if part == "" {
			ev.Missing = true
		} else if !coerceScalar(&ev, part, elem) {
			ev.Type = TypeString
			ev.Str = part
			ev.Semantic = Invalid
			v.Contamination = Contaminated
		}
		v.Elems = append(v.Elems, ev)
	}
}

// Reassign re-runs the coercion rules on a new literal, preserving the
// value's ascription, and flips the edited flag. The original source
// text is gone afterwards.
func (v *Value) Reassign(lit string) {
	var nv Value
	if v.Ascription == Declared {
		nv = DeclaredValue(lit, v.DeclaredType)
	} else {
		nv = TacitValue(lit)
	}
	nv.HasSource = false
	nv.Source = ""
	nv.Edited = true
	*v = nv
}

func (v *Value) Valid() bool        { return v.Semantic == Valid }
func (v *Value) Contaminated() bool { return v.Contamination == Contaminated }
func (v *Value) IsArray() bool      { return v.Type.IsArray() }

func (v *Value) Len() int {
	return len(v.Elems)
}

// Elem returns the i-th array element, nil when out of range or not an
// array.
func (v *Value) Elem(i int) *Value {
	if i < 0 || i >= len(v.Elems) {
		return nil
	}
	return &v.Elems[i]
}

// SourceText returns the original literal when the value still carries
// one.
func (v *Value) SourceText() (string, bool) {
	if !v.HasSource {
		return "", false
	}
	return v.Source, true
}

// AsString renders the value as text, preferring the original literal.
func (v *Value) AsString() (string, bool) {
	if v.HasSource {
		return v.Source, true
	}
	switch v.Type {
	case TypeString, TypeDate:
		return v.Str, true
	case TypeInt:
		return strconv.FormatInt(v.Int, 10), true
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), true
	case TypeBool:
		return strconv.FormatBool(v.Bool), true
	}
	return "", false
}

// AsInt converts scalars to int64 where a faithful conversion exists.
func (v *Value) AsInt() (int64, bool) {
	switch v.Type {
	case TypeInt:
		return v.Int, true
	case TypeFloat:
		return int64(v.Float), true
	case TypeString, TypeDate:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func (v *Value) AsFloat() (float64, bool) {
	switch v.Type {
	case TypeFloat:
		return v.Float, true
	case TypeInt:
		return float64(v.Int), true
	case TypeString, TypeDate:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		return f, err == nil
	}
	return 0, false
}

func (v *Value) AsBool() (bool, bool) {
	switch v.Type {
	case TypeBool:
		return v.Bool, true
	case TypeString:
		switch strings.ToLower(v.Str) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}
	return false, false
}

// Strings returns the present (non-missing) elements of a string array.
func (v *Value) Strings() ([]string, bool) {
	if v.Type != TypeStringArray {
		return nil, false
	}
	res := make([]string, 0, len(v.Elems))
	for i := range v.Elems {
		e := &v.Elems[i]
		if e.Missing || e.Semantic == Invalid {
			continue
		}
		res = append(res, e.Str)
	}
	return res, true
}

// Ints returns the present elements of an int array.
func (v *Value) Ints() ([]int64, bool) {
	if v.Type != TypeIntArray {
		return nil, false
	}
	res := make([]int64, 0, len(v.Elems))
	for i := range v.Elems {
		e := &v.Elems[i]
		if e.Missing || e.Semantic == Invalid {
			continue
		}
		res = append(res, e.Int)
	}
	return res, true
}

// Floats returns the present elements of a float array.
func (v *Value) Floats() ([]float64, bool) {
	if v.Type != TypeFloatArray {
		return nil, false
	}
	res := make([]float64, 0, len(v.Elems))
	for i := range v.Elems {
		e := &v.Elems[i]
		if e.Missing || e.Semantic == Invalid {
			continue
		}
		res = append(res, e.Float)
	}
	return res, true
}

// Native converts the value to a plain Go value for interop and
// expression environments. Missing elements are dropped from arrays.
func (v *Value) Native() any {
	switch v.Type {
	case TypeString, TypeDate:
		return v.Str
	case TypeInt:
		return v.Int
	case TypeFloat:
		return v.Float
	case TypeBool:
		return v.Bool
	case TypeStringArray, TypeIntArray, TypeFloatArray:
		res := make([]any, 0, len(v.Elems))
		for i := range v.Elems {
			e := &v.Elems[i]
			if e.Missing {
				continue
			}
			res = append(res, e.Native())
		}
		return res
	}
	return nil
}
