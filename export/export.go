// Package export renders a document as plain nested Go data and
// serializes it to JSON or YAML. The mapping is lossy by design:
// comments, source text and validity states are dropped, values export
// as their native forms.
package export

import (
	"encoding/json"

	"github.com/goccy/go-yaml"

	"github.com/arf-format/go-arf/ir"
)

// ToMap converts the document to nested maps: key name to native
// value, subcategory name to nested map, and a "_tables" entry holding
// each table's rows as column-name-keyed objects. Rows declared in a
// subcategory export under that subcategory, with the owning table's
// schema.
func ToMap(doc *ir.Document) map[string]any {
	e := &exporter{doc: doc, rowsBy: map[ir.CategoryID]map[ir.TableID][]*ir.Row{}}
	for i := 0; i < doc.RowCount(); i++ {
		r := doc.Row(ir.RowID(i))
		cid := r.DeclaredIn().ID()
		byTable := e.rowsBy[cid]
		if byTable == nil {
			byTable = map[ir.TableID][]*ir.Row{}
			e.rowsBy[cid] = byTable
		}
		tid := r.Table().ID()
		byTable[tid] = append(byTable[tid], r)
	}
	return e.category(doc.Root())
}

type exporter struct {
	doc    *ir.Document
	rowsBy map[ir.CategoryID]map[ir.TableID][]*ir.Row
}

func (e *exporter) category(c *ir.Category) map[string]any {
	m := map[string]any{}
	for _, id := range c.Keys() {
		k := e.doc.Key(id)
		m[k.Name()] = k.Value().Native()
	}
	var tables []any
	for _, tid := range c.Tables() {
		tables = append(tables, e.tableRows(tid, e.rowsBy[c.ID()][tid]))
	}
	// Rows contributed to ancestor tables keep their declaring
	// category, so they surface here rather than at the owner.
	for tid := ir.TableID(0); int(tid) < e.doc.TableCount(); tid++ {
		rows := e.rowsBy[c.ID()][tid]
		if len(rows) > 0 && e.doc.Table(tid).Owner() != c {
			tables = append(tables, e.tableRows(tid, rows))
		}
	}
	if tables != nil {
		m["_tables"] = tables
	}
	for _, id := range c.Children() {
		sub := e.doc.Category(id)
		m[sub.Name()] = e.category(sub)
	}
	return m
}

func (e *exporter) tableRows(tid ir.TableID, rows []*ir.Row) []any {
	t := e.doc.Table(tid)
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		obj := map[string]any{}
		for i := 0; i < t.ColumnCount(); i++ {
			cell := r.Cell(i)
			if cell == nil || cell.Missing {
				continue
			}
			obj[t.Column(i).Name()] = cell.Native()
		}
		out = append(out, obj)
	}
	return out
}

func ToJSON(doc *ir.Document) ([]byte, error) {
	return json.MarshalIndent(ToMap(doc), "", "  ")
}

func ToYAML(doc *ir.Document) ([]byte, error) {
	return yaml.Marshal(ToMap(doc))
}
