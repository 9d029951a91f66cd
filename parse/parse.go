// Package parse materializes raw Arf text into a typed document graph.
package parse

import (
	"github.com/arf-format/go-arf/debug"
	"github.com/arf-format/go-arf/diag"
	"github.com/arf-format/go-arf/ir"
	"github.com/arf-format/go-arf/token"
)

// scope state for one open category. table is the most recent table of
// this scope, which rows in this scope and its subcategories continue.
// dead marks a branch past the depth cap: it keeps the scope stack
// balanced while its contents are dropped.
type frame struct {
	name  string
	cat   ir.CategoryID
	table ir.TableID
	dead  bool
}

type materializer struct {
	doc   *ir.Document
	opts  *loadOpts
	diags []diag.Diagnostic

	stack []frame // stack[0] is the root scope
}

// Load never fails: it always returns a usable document, possibly
// degraded, together with the diagnostics accumulated along the way.
func Load(src []byte, opts ...LoadOption) (*ir.Document, []diag.Diagnostic) {
	o := newLoadOpts()
	for _, f := range opts {
		f(o)
	}
	events, _ := token.Scan(nil, src)
	if debug.Scan() {
		for i := range events {
			debug.Logf("scan %s %q %q\n", events[i].Type, events[i].Name, events[i].Literal)
		}
	}
	m := &materializer{
		doc:   ir.NewDocument(),
		opts:  o,
		stack: []frame{{cat: ir.RootCategory, table: ir.NoTable}},
	}
	for i := range events {
		m.event(&events[i])
	}
	m.doc.RefreshAll()
	return m.doc, m.diags
}

func (m *materializer) cur() *frame {
	return &m.stack[len(m.stack)-1]
}

func (m *materializer) diagf(k diag.Kind, pos *token.Pos, format string, args ...any) {
	if debug.Materialize() {
		debug.Logf("materialize diag %s\n", k)
	}
	m.diags = append(m.diags, diag.Newf(k, pos, format, args...))
}

func (m *materializer) event(ev *token.Event) {
	switch ev.Type {
	case token.ECategoryOpen:
		if ev.Top {
			m.openTop(ev)
		} else {
			m.openSub(ev)
		}
	case token.ECategoryClose:
		m.close(ev)
	case token.ETableHeader:
		m.tableHeader(ev)
	case token.ETableRow:
		m.tableRow(ev)
	case token.EKeyValue:
		m.keyValue(ev)
	case token.EComment:
		if cur := m.cur(); !cur.dead {
			m.doc.AddComment(cur.cat, ev.Text)
		}
	case token.EParagraph:
		if cur := m.cur(); !cur.dead {
			m.doc.AddParagraph(cur.cat, ev.Text)
		}
	}
}

// openTop implicitly closes every open scope, then opens a fresh
// top-level category under root. Top categories never continue a root
// table.
func (m *materializer) openTop(ev *token.Event) {
	m.stack = m.stack[:1]
	c := m.doc.AddCategory(ir.RootCategory, ev.Name)
	m.stack = append(m.stack, frame{name: ev.Name, cat: c.ID(), table: ir.NoTable})
}

// openSub opens a subcategory of the current scope, inheriting the
// scope's most recent table for hierarchical row continuation.
func (m *materializer) openSub(ev *token.Event) {
	parent := m.cur()
	if parent.dead {
		m.stack = append(m.stack, frame{name: ev.Name, dead: true})
		return
	}
	if m.doc.Category(parent.cat).Depth()+1 > m.opts.maxDepth {
		m.diagf(diag.KindDepthExceeded, ev.Pos,
			"category %q exceeds max depth %d", ev.Name, m.opts.maxDepth)
		m.stack = append(m.stack, frame{name: ev.Name, dead: true})
		return
	}
	c := m.doc.AddCategory(parent.cat, ev.Name)
	m.stack = append(m.stack, frame{name: ev.Name, cat: c.ID(), table: parent.table})
}

// close pops scopes innermost-outward until a name match; the bare
// shorthand pops exactly one. An unmatched close is diagnosed and
// leaves the stack intact.
func (m *materializer) close(ev *token.Event) {
	if len(m.stack) <= 1 {
		m.diagf(diag.KindInvalidCategoryClose, ev.Pos, "close %q with no open category", ev.Name)
		return
	}
	if ev.Name == "" {
		m.pop(true)
		return
	}
	match := -1
	for i := len(m.stack) - 1; i >= 1; i-- {
		if m.stack[i].name == ev.Name {
			match = i
			break
		}
	}
	if match < 0 {
		m.diagf(diag.KindInvalidCategoryClose, ev.Pos, "close %q matches no open category", ev.Name)
		return
	}
	for len(m.stack) > match+1 {
		m.pop(false)
	}
	m.pop(true)
}

// pop removes the innermost scope; explicit closes leave a close marker
// in the parent's declared items, implicit ones do not.
func (m *materializer) pop(explicit bool) {
	top := m.cur()
	if explicit && !top.dead {
		m.doc.NoteSubClose(top.cat)
	}
	m.stack = m.stack[:len(m.stack)-1]
}

func (m *materializer) tableHeader(ev *token.Event) {
	cur := m.cur()
	if cur.dead {
		return
	}
	t := m.doc.AddTable(cur.cat)
	for _, f := range ev.Fields {
		typ, asc, sem := ir.TypeString, ir.Tacit, ir.Valid
		if f.TypeTok != "" {
			if tt, ok := ir.ParseTypeToken(f.TypeTok); ok {
				typ, asc = tt, ir.Declared
			} else {
				m.diagf(diag.KindInvalidDeclaredType, ev.Pos,
					"column %q: unrecognized type %q", f.Name, f.TypeTok)
				if m.opts.rejectUnknown {
					sem = ir.Invalid
				}
			}
		}
		m.doc.AddColumn(t.ID(), f.Name, typ, asc, f.TypeTok, sem)
	}
	cur.table = t.ID()
}

func (m *materializer) tableRow(ev *token.Event) {
	cur := m.cur()
	if cur.dead || cur.table == ir.NoTable {
		return
	}
	t := m.doc.Table(cur.table)
	cells := make([]ir.Value, 0, t.ColumnCount())
	for i := 0; i < t.ColumnCount(); i++ {
		col := t.Column(i)
		if i >= len(ev.Fields) {
			// Short rows pad with missing placeholders. The column's
			// type travels with the cell so later edits re-coerce
			// against it.
			cells = append(cells, ir.Value{
				Type:         col.Type(),
				Ascription:   col.Ascription(),
				DeclaredType: col.Type(),
				Missing:      true,
			})
			continue
		}
		lit := ev.Fields[i].Name
		if col.Ascription() == ir.Declared {
			v := ir.DeclaredValue(lit, col.Type())
			m.diagValue(&v, ev.Pos, col.Name(), lit)
			cells = append(cells, v)
			continue
		}
		cells = append(cells, ir.TacitValue(lit))
	}
	if len(ev.Fields) > t.ColumnCount() {
		m.diagf(diag.KindExtraCells, ev.Pos,
			"row has %d cells, table has %d columns", len(ev.Fields), t.ColumnCount())
	}
	m.doc.AddRow(cur.table, cur.cat, cells)
}

func (m *materializer) keyValue(ev *token.Event) {
	cur := m.cur()
	if cur.dead {
		return
	}
	owner := m.doc.Category(cur.cat)
	if owner.Key(ev.Name) != nil {
		m.diagf(diag.KindDuplicateKey, ev.Pos, "duplicate key %q", ev.Name)
		return
	}
	var v ir.Value
	switch {
	case ev.TypeTok == "":
		v = ir.TacitValue(ev.Literal)
	default:
		if t, ok := ir.ParseTypeToken(ev.TypeTok); ok {
			v = ir.DeclaredValue(ev.Literal, t)
			m.diagValue(&v, ev.Pos, ev.Name, ev.Literal)
		} else {
			m.diagf(diag.KindInvalidDeclaredType, ev.Pos,
				"key %q: unrecognized type %q", ev.Name, ev.TypeTok)
			v = ir.TacitValue(ev.Literal)
			if m.opts.rejectUnknown {
				v.Semantic = ir.Invalid
			}
		}
	}
	m.doc.AddKey(cur.cat, ev.Name, v)
}

// diagValue reports coercion failures on a freshly declared value: one
// type_mismatch for a failed scalar, one per invalid array element.
func (m *materializer) diagValue(v *ir.Value, pos *token.Pos, name, lit string) {
	if !v.IsArray() {
		if v.Semantic == ir.Invalid {
			m.diagf(diag.KindTypeMismatch, pos,
				"%s: %q does not parse as %s", name, lit, v.DeclaredType)
		}
		return
	}
	for i := range v.Elems {
		e := &v.Elems[i]
		if e.Semantic == ir.Invalid {
			m.diagf(diag.KindTypeMismatch, pos,
				"%s[%d]: %q does not parse as %s", name, i, e.Source, e.DeclaredType)
		}
	}
}
