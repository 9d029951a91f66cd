package query

import (
	"fmt"

	"github.com/arf-format/go-arf/debug"
	"github.com/arf-format/go-arf/ir"

	"github.com/expr-lang/expr"
)

type rowFilter func(env map[string]any, r *ir.Row, t *ir.Table) (bool, error)

// Query is a fluent row query over one table, scoped to a category.
// When the category has no table of its own but contributes rows to an
// ancestor's table, the query covers exactly that category's partition.
type Query struct {
	doc     *ir.Document
	path    string
	tableN  int
	filters []rowFilter
	sel     string
	issues  []string
}

// Of anchors a query at a dotted category path ("" for root).
func Of(doc *ir.Document, path string) *Query {
	return &Query{doc: doc, path: path, sel: ""}
}

// Table picks the n-th table of the anchor category. Without a Table
// call the first one is used.
func (q *Query) Table(n int) *Query {
	q.tableN = n
	return q
}

// Where keeps rows whose named cell renders to exactly lit.
func (q *Query) Where(col, lit string) *Query {
	q.filters = append(q.filters, func(_ map[string]any, r *ir.Row, t *ir.Table) (bool, error) {
		c := r.CellByName(col)
		if c == nil {
			return false, fmt.Errorf("no column %q", col)
		}
		s, ok := c.AsString()
		return ok && s == lit, nil
	})
	return q
}

// WhereExpr keeps rows for which the expression evaluates to true. The
// expression sees one variable per column, bound to the cell's native
// value.
func (q *Query) WhereExpr(src string) *Query {
	prg, cerr := expr.Compile(src, expr.AllowUndefinedVariables())
	q.filters = append(q.filters, func(env map[string]any, _ *ir.Row, _ *ir.Table) (bool, error) {
		if cerr != nil {
			return false, cerr
		}
		res, err := expr.Run(prg, env)
		if err != nil {
			return false, err
		}
		b, ok := res.(bool)
		if !ok {
			return false, fmt.Errorf("filter %q returned %T, want bool", src, res)
		}
		return b, nil
	})
	return q
}

// Select projects the named column; without it the whole row's first
// cell is projected.
func (q *Query) Select(col string) *Query {
	q.sel = col
	return q
}

// Result holds the matched value references plus any issues hit along
// the way. Scalar accessors on a plural result record an ambiguity
// issue and fail.
type Result struct {
	Values []*ir.Value
	Rows   []*ir.Row
	Issues []string
}

func (r *Result) Len() int        { return len(r.Values) }
func (r *Result) Ambiguous() bool { return len(r.Values) > 1 }

// Value is the single match, nil when there are zero or several.
func (r *Result) Value() *ir.Value {
	if len(r.Values) != 1 {
		return nil
	}
	return r.Values[0]
}

func (r *Result) single() *ir.Value {
	if len(r.Values) == 0 {
		r.Issues = append(r.Issues, "no match")
		return nil
	}
	if len(r.Values) > 1 {
		r.Issues = append(r.Issues, fmt.Sprintf("ambiguous: %d matches", len(r.Values)))
		return nil
	}
	return r.Values[0]
}

func (r *Result) AsString() (string, bool) {
	v := r.single()
	if v == nil {
		return "", false
	}
	return v.AsString()
}

func (r *Result) AsInt() (int64, bool) {
	v := r.single()
	if v == nil {
		return 0, false
	}
	return v.AsInt()
}

func (r *Result) AsFloat() (float64, bool) {
	v := r.single()
	if v == nil {
		return 0, false
	}
	return v.AsFloat()
}

func (r *Result) AsBool() (bool, bool) {
	v := r.single()
	if v == nil {
		return false, false
	}
	return v.AsBool()
}

// Eval runs the query. It never fails; problems surface as issues on
// the result.
func (q *Query) Eval() *Result {
	res := &Result{Issues: q.issues}
	cat := categoryAt(q.doc, q.path)
	if cat == nil {
		res.Issues = append(res.Issues, fmt.Sprintf("no category at %q", q.path))
		return res
	}
	t, rows := q.scope(cat)
	if t == nil {
		res.Issues = append(res.Issues, fmt.Sprintf("no table %d under %q", q.tableN, q.path))
		return res
	}
	selIdx := 0
	if q.sel != "" {
		n, ok := t.ColumnIndex(q.sel)
		if !ok {
			res.Issues = append(res.Issues, fmt.Sprintf("no column %q", q.sel))
			return res
		}
		selIdx = n
	}
	for _, rid := range rows {
		r := q.doc.Row(rid)
		env := rowEnv(r, t)
		keep := true
		for _, f := range q.filters {
			ok, err := f(env, r, t)
			if err != nil {
				res.Issues = append(res.Issues, err.Error())
				keep = false
				break
			}
			if !ok {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		if debug.Query() {
			debug.Logf("query match row %d\n", r.ID())
		}
		res.Rows = append(res.Rows, r)
		if v := r.Cell(selIdx); v != nil {
			res.Values = append(res.Values, v)
		}
	}
	return res
}

// scope finds the queried table and the row set: the category's own
// table when it has one, otherwise its partition of the nearest
// ancestor table it contributes to.
func (q *Query) scope(cat *ir.Category) (*ir.Table, []ir.RowID) {
	if ids := cat.Tables(); q.tableN >= 0 && q.tableN < len(ids) {
		t := q.doc.Table(ids[q.tableN])
		return t, t.Rows()
	}
	if q.tableN != 0 {
		return nil, nil
	}
	for anc := cat.Parent(); anc != nil; anc = anc.Parent() {
		for _, tid := range anc.Tables() {
			t := q.doc.Table(tid)
			if p := t.PartitionFor(cat.ID()); p != nil {
				return t, p.Rows()
			}
		}
	}
	return nil, nil
}

// rowEnv builds the expression environment for one row: column name to
// native cell value.
func rowEnv(r *ir.Row, t *ir.Table) map[string]any {
	env := make(map[string]any, t.ColumnCount())
	for i := 0; i < t.ColumnCount(); i++ {
		col := t.Column(i)
		if c := r.Cell(i); c != nil && !c.Missing {
			env[col.Name()] = c.Native()
		} else {
			env[col.Name()] = nil
		}
	}
	return env
}
