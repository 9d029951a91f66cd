package resolve

import (
	"github.com/arf-format/go-arf/debug"
	"github.com/arf-format/go-arf/ir"
)

// cursor holds the mutually exclusive positions of an in-flight
// resolution. val, once set, admits only index steps.
type cursor struct {
	cat       *ir.Category
	table     *ir.Table
	row       *ir.Row
	val       *ir.Value
	descended bool
}

// Resolve walks the address against the document, one step at a time,
// with no backtracking. It returns the resolved value reference or the
// first failing step as a *Error.
func Resolve(doc *ir.Document, addr Address) (*ir.Value, error) {
	c := cursor{cat: doc.Root()}
	for i, s := range addr.steps {
		if debug.Resolve() {
			debug.Logf("resolve step %d %s %q\n", i, s.Kind, s.Name)
		}
		if err := c.step(doc, i, &s); err != nil {
			return nil, err
		}
	}
	if c.val == nil {
		return nil, errAt(len(addr.steps), KindNoValue)
	}
	return c.val, nil
}

func (c *cursor) step(doc *ir.Document, i int, s *Step) *Error {
	if c.val != nil && s.Kind != StepIndex {
		return errAt(i, KindStructureAfterValue)
	}
	switch s.Kind {
	case StepTop:
		if c.descended {
			return errAt(i, KindTopCategoryAfterCategory)
		}
		sub := doc.Root().Child(s.Name)
		if sub == nil {
			return errAt(i, KindTopCategoryNotFound)
		}
		c.cat, c.descended = sub, true
		c.table, c.row = nil, nil

	case StepSub:
		if c.cat == nil || c.cat.IsRoot() {
			return errAt(i, KindNoCategoryContext)
		}
		sub := c.cat.Child(s.Name)
		if sub == nil {
			return errAt(i, KindSubCategoryNotFound)
		}
		c.cat, c.descended = sub, true
		c.table, c.row = nil, nil

	case StepKey:
		if c.cat == nil {
			return errAt(i, KindNoCategoryContext)
		}
		k := c.cat.Key(s.Name)
		if k == nil {
			return errAt(i, KindKeyNotFound)
		}
		c.val = k.Value()

	case StepKeyID:
		if c.cat == nil {
			return errAt(i, KindNoCategoryContext)
		}
		k := doc.Key(ir.KeyID(s.ID))
		if k == nil || k.Owner() != c.cat {
			return errAt(i, KindKeyNotFound)
		}
		c.val = k.Value()

	case StepTable:
		if c.cat == nil {
			return errAt(i, KindNoCategoryContext)
		}
		t := doc.Table(ir.TableID(s.ID))
		if t == nil || t.Owner() != c.cat {
			return errAt(i, KindTableNotFound)
		}
		c.table, c.row = t, nil

	case StepLocalTable:
		if c.cat == nil {
			return errAt(i, KindNoCategoryContext)
		}
		ids := c.cat.Tables()
		if s.Ord < 0 || s.Ord >= len(ids) {
			return errAt(i, KindTableNotFound)
		}
		c.table, c.row = doc.Table(ids[s.Ord]), nil

	case StepRow:
		if c.table == nil {
			return errAt(i, KindNoTableContext)
		}
		if !c.table.Owns(ir.RowID(s.ID)) {
			return errAt(i, KindRowNotOwned)
		}
		c.row = doc.Row(ir.RowID(s.ID))

	case StepColumn, StepColumnID:
		if c.table == nil {
			return errAt(i, KindNoTableContext)
		}
		if c.row == nil {
			return errAt(i, KindNoRowContext)
		}
		idx := -1
		if s.Kind == StepColumn {
			if n, ok := c.table.ColumnIndex(s.Name); ok {
				idx = n
			}
		} else if col := doc.Column(ir.ColumnID(s.ID)); col != nil && col.Table() == c.table {
			idx = col.Index()
		}
		if idx < 0 {
			return errAt(i, KindColumnNotFound)
		}
		v := c.row.Cell(idx)
		if v == nil {
			return errAt(i, KindColumnNotFound)
		}
		c.val = v

	case StepIndex:
		if c.val == nil {
			return errAt(i, KindNoValue)
		}
		if !c.val.IsArray() {
			return errAt(i, KindNotAnArray)
		}
		e := c.val.Elem(s.Ord)
		if e == nil {
			return errAt(i, KindIndexOutOfBounds)
		}
		c.val = e
	}
	return nil
}
