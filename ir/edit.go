package ir

// SetKeyValue reassigns a key's value from a new literal. The literal
// goes through the same coercion rules as at load time, under the key's
// original ascription: a declared key re-coerces against its declared
// type and can flip between valid and invalid; a tacit key stays a
// string. Validity and contamination are recomputed up the owning
// chain.
func (d *Document) SetKeyValue(id KeyID, literal string) bool {
	k := d.Key(id)
	if k == nil {
		return false
	}
	k.value.Reassign(literal)
	d.RefreshUp(k.Owner())
	return true
}

// SetCellValue reassigns one cell of a row, addressed by column ordinal.
func (d *Document) SetCellValue(id RowID, col int, literal string) bool {
	r := d.Row(id)
	if r == nil {
		return false
	}
	c := r.Cell(col)
	if c == nil {
		return false
	}
	c.Reassign(literal)
	r.refresh()
	d.RefreshTable(r.table)
	return true
}

// SetArrayElement reassigns one element of an array-typed key. The
// element re-coerces against the array's element type; the whole
// array value is marked edited.
func (d *Document) SetArrayElement(id KeyID, idx int, literal string) bool {
	k := d.Key(id)
	if k == nil || !k.value.IsArray() {
		return false
	}
	e := k.value.Elem(idx)
	if e == nil {
		return false
	}
	e.Reassign(literal)
	markArrayEdited(&k.value)
	d.RefreshUp(k.Owner())
	return true
}

// AppendArrayElement grows an array-typed key by one element coerced
// against the element type.
func (d *Document) AppendArrayElement(id KeyID, literal string) bool {
	k := d.Key(id)
	if k == nil || !k.value.IsArray() {
		return false
	}
	ev := DeclaredValue(literal, k.value.Type.Elem())
	ev.HasSource = false
	ev.Source = ""
	ev.Edited = true
	k.value.Elems = append(k.value.Elems, ev)
	markArrayEdited(&k.value)
	d.RefreshUp(k.Owner())
	return true
}

// markArrayEdited drops the array's original literal, flags the edit and
// recomputes contamination from the element states.
func markArrayEdited(v *Value) {
	v.Edited = true
	v.HasSource = false
	v.Source = ""
	v.Contamination = Clean
	for i := range v.Elems {
		if v.Elems[i].Semantic == Invalid {
			v.Contamination = Contaminated
			break
		}
	}
}
