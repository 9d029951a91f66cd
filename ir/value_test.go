package ir

import "testing"

func TestTacitValue(t *testing.T) {
	v := TacitValue("1|2|3")
	if v.Type != TypeString || v.Ascription != Tacit || v.Semantic != Valid {
		t.Fatalf("got %s/%s/%s", v.Type, v.Ascription, v.Semantic)
	}
	// Delimiters are inert without a declared array type.
	if v.Str != "1|2|3" || v.IsArray() {
		t.Fatalf("got %q array=%v", v.Str, v.IsArray())
	}
}

func TestDeclaredScalars(t *testing.T) {
	tests := []struct {
		lit   string
		typ   ValueType
		valid bool
	}{
		{lit: "42", typ: TypeInt, valid: true},
		{lit: "hello", typ: TypeInt, valid: false},
		{lit: "3.25", typ: TypeFloat, valid: true},
		{lit: "x", typ: TypeFloat, valid: false},
		{lit: "yes", typ: TypeBool, valid: true},
		{lit: "0", typ: TypeBool, valid: true},
		{lit: "maybe", typ: TypeBool, valid: false},
		{lit: "anything", typ: TypeString, valid: true},
		{lit: "2024-01-15", typ: TypeDate, valid: true},
	}
	for _, tc := range tests {
		v := DeclaredValue(tc.lit, tc.typ)
		if (v.Semantic == Valid) != tc.valid {
			t.Errorf("%q as %s: semantic %s", tc.lit, tc.typ, v.Semantic)
		}
		if v.Ascription != Declared {
			t.Errorf("%q as %s: ascription %s", tc.lit, tc.typ, v.Ascription)
		}
		if !tc.valid {
			// Failed coercion collapses to string, keeps the literal.
			if v.Type != TypeString || v.Str != tc.lit || v.DeclaredType != tc.typ {
				t.Errorf("%q as %s: collapsed to %s %q (declared %s)",
					tc.lit, tc.typ, v.Type, v.Str, v.DeclaredType)
			}
		}
	}
}

func TestDeclaredIntArray(t *testing.T) {
	v := DeclaredValue("1|2|3", TypeIntArray)
	if v.Semantic != Valid || v.Contamination != Clean || v.Len() != 3 {
		t.Fatalf("got %s/%s len=%d", v.Semantic, v.Contamination, v.Len())
	}
	ints, ok := v.Ints()
	if !ok || len(ints) != 3 || ints[0] != 1 || ints[2] != 3 {
		t.Fatalf("Ints = %v %v", ints, ok)
	}
}

func TestArrayBadElementContaminates(t *testing.T) {
	v := DeclaredValue("1|nope|3", TypeIntArray)
	if v.Semantic != Valid {
		t.Errorf("owner semantic %s, want valid", v.Semantic)
	}
	if v.Contamination != Contaminated {
		t.Errorf("owner %s, want contaminated", v.Contamination)
	}
	e := v.Elem(1)
	if e.Semantic != Invalid || e.Type != TypeString || e.Str != "nope" {
		t.Errorf("element 1: %s %s %q", e.Semantic, e.Type, e.Str)
	}
}

func TestArrayMissingElements(t *testing.T) {
	v := DeclaredValue("a||b|", TypeStringArray)
	if v.Len() != 4 {
		t.Fatalf("len = %d", v.Len())
	}
	if !v.Elem(1).Missing || !v.Elem(3).Missing {
		t.Errorf("elements 1 and 3 should be missing")
	}
	if v.Semantic != Valid || v.Contamination != Clean {
		t.Errorf("got %s/%s", v.Semantic, v.Contamination)
	}
	ss, _ := v.Strings()
	if len(ss) != 2 || ss[0] != "a" || ss[1] != "b" {
		t.Errorf("Strings = %v", ss)
	}
}

func TestReassignKeepsDeclaredType(t *testing.T) {
	v := DeclaredValue("42", TypeInt)
	v.Reassign("nope")
	if v.Semantic != Invalid || v.Type != TypeString || !v.Edited {
		t.Fatalf("after bad reassign: %s %s edited=%v", v.Semantic, v.Type, v.Edited)
	}
	if _, ok := v.SourceText(); ok {
		t.Error("edited value still reports source text")
	}
	v.Reassign("7")
	if v.Semantic != Valid || v.Type != TypeInt || v.Int != 7 {
		t.Fatalf("after good reassign: %s %s %d", v.Semantic, v.Type, v.Int)
	}
}

func TestConversions(t *testing.T) {
	v := DeclaredValue("3", TypeInt)
	if f, ok := v.AsFloat(); !ok || f != 3 {
		t.Errorf("AsFloat = %v %v", f, ok)
	}
	s := TacitValue("12")
	if i, ok := s.AsInt(); !ok || i != 12 {
		t.Errorf("AsInt = %v %v", i, ok)
	}
	if got, ok := s.AsString(); !ok || got != "12" {
		t.Errorf("AsString = %q %v", got, ok)
	}
	b := TacitValue("yes")
	if bv, ok := b.AsBool(); !ok || !bv {
		t.Errorf("AsBool = %v %v", bv, ok)
	}
}
