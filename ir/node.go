package ir

import "sync"

// Category is a tree node with an optional name (empty only for root),
// a parent reference (none for root) and an ordered list of declared
// items preserving authoring order.
type Category struct {
	doc    *Document
	id     CategoryID
	name   string
	parent CategoryID
	depth  int

	children []CategoryID
	keys     []KeyID
	tables   []TableID
	items    []Item

	contamination Contamination
}

func (c *Category) ID() CategoryID { return c.id }
func (c *Category) Name() string   { return c.name }
func (c *Category) IsRoot() bool   { return c.id == RootCategory }
func (c *Category) Depth() int     { return c.depth }

func (c *Category) Parent() *Category {
	if c.parent == NoCategory {
		return nil
	}
	return c.doc.Category(c.parent)
}

func (c *Category) Children() []CategoryID { return c.children }
func (c *Category) Keys() []KeyID          { return c.keys }
func (c *Category) Tables() []TableID      { return c.tables }

// Items is the category's declared items in authoring order, for
// ordered iteration by serializing collaborators.
func (c *Category) Items() []Item { return c.items }

// Child finds a direct subcategory by name.
func (c *Category) Child(name string) *Category {
	for _, id := range c.children {
		if sub := c.doc.Category(id); sub != nil && sub.name == name {
			return sub
		}
	}
	return nil
}

// Key finds a key of this category by name. Key names are unique within
// their owning category.
func (c *Category) Key(name string) *Key {
	for _, id := range c.keys {
		if k := c.doc.Key(id); k != nil && k.name == name {
			return k
		}
	}
	return nil
}

// The root category is never invalid or contaminated; other categories
// are always locally valid and carry only contamination.
func (c *Category) Valid() bool { return true }

func (c *Category) Contaminated() bool { return c.contamination == Contaminated }

// Key is a named typed value scoped to exactly one owning category.
type Key struct {
	doc   *Document
	id    KeyID
	name  string
	owner CategoryID
	value Value
}

func (k *Key) ID() KeyID        { return k.id }
func (k *Key) Name() string     { return k.name }
func (k *Key) Owner() *Category { return k.doc.Category(k.owner) }
func (k *Key) Value() *Value    { return &k.value }

// Table anchors an ordered column schema and an ordered row list to one
// owning category. Rows may be declared inside nested subcategories of
// that category; row order is document order regardless of contributor.
type Table struct {
	doc     *Document
	id      TableID
	owner   CategoryID
	columns []ColumnID
	rows    []RowID

	contamination Contamination

	partOnce   sync.Once
	partitions []partitionInfo
}

func (t *Table) ID() TableID          { return t.id }
func (t *Table) Owner() *Category     { return t.doc.Category(t.owner) }
func (t *Table) Columns() []ColumnID  { return t.columns }
func (t *Table) Rows() []RowID        { return t.rows }
func (t *Table) ColumnCount() int     { return len(t.columns) }
func (t *Table) RowCount() int        { return len(t.rows) }
func (t *Table) Valid() bool          { return true }
func (t *Table) Contaminated() bool   { return t.contamination == Contaminated }

func (t *Table) Column(i int) *Column {
	if i < 0 || i >= len(t.columns) {
		return nil
	}
	return t.doc.Column(t.columns[i])
}

// ColumnIndex finds a column ordinal by name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, id := range t.columns {
		if col := t.doc.Column(id); col != nil && col.name == name {
			return i, true
		}
	}
	return 0, false
}

func (t *Table) Row(i int) *Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.doc.Row(t.rows[i])
}

// Owns reports whether the row belongs to this table.
func (t *Table) Owns(id RowID) bool {
	r := t.doc.Row(id)
	return r != nil && r.table == t.id
}

// Column carries a name, an effective value type, its ascription kind
// and its own semantic state (invalid when the declared-type token was
// unrecognized and the load rejects unknown types).
type Column struct {
	doc         *Document
	id          ColumnID
	table       TableID
	index       int
	name        string
	typ         ValueType
	ascription  Ascription
	declaredTok string

	semantic      Semantic
	contamination Contamination
}

func (c *Column) ID() ColumnID          { return c.id }
func (c *Column) Name() string          { return c.name }
func (c *Column) Index() int            { return c.index }
func (c *Column) Table() *Table         { return c.doc.Table(c.table) }
func (c *Column) Type() ValueType       { return c.typ }
func (c *Column) Ascription() Ascription { return c.ascription }
func (c *Column) Valid() bool           { return c.semantic == Valid }
func (c *Column) Contaminated() bool    { return c.contamination == Contaminated }

// DeclaredTypeToken is the authored type token, empty for tacit columns.
func (c *Column) DeclaredTypeToken() string { return c.declaredTok }

// Row is an ordered list of cells owned by exactly one table. It also
// records the category that declared it, supporting per-subcategory
// partitioning.
type Row struct {
	doc        *Document
	id         RowID
	table      TableID
	declaredIn CategoryID
	cells      []Value

	contamination Contamination
}

func (r *Row) ID() RowID             { return r.id }
func (r *Row) Table() *Table         { return r.doc.Table(r.table) }
func (r *Row) DeclaredIn() *Category { return r.doc.Category(r.declaredIn) }
func (r *Row) CellCount() int        { return len(r.cells) }
func (r *Row) Valid() bool           { return true }
func (r *Row) Contaminated() bool    { return r.contamination == Contaminated }

func (r *Row) Cell(i int) *Value {
	if i < 0 || i >= len(r.cells) {
		return nil
	}
	return &r.cells[i]
}

// CellByName resolves a cell through the table's column schema.
func (r *Row) CellByName(name string) *Value {
	t := r.Table()
	if t == nil {
		return nil
	}
	i, ok := t.ColumnIndex(name)
	if !ok {
		return nil
	}
	return r.Cell(i)
}

// Comment is a verbatim comment line attached to a category.
type Comment struct {
	doc   *Document
	id    CommentID
	owner CategoryID
	text  string
}

func (c *Comment) ID() CommentID    { return c.id }
func (c *Comment) Owner() *Category { return c.doc.Category(c.owner) }
func (c *Comment) Text() string     { return c.text }

// Paragraph is a verbatim text run spanning until a blank line.
type Paragraph struct {
	doc   *Document
	id    ParagraphID
	owner CategoryID
	text  string
}

func (p *Paragraph) ID() ParagraphID  { return p.id }
func (p *Paragraph) Owner() *Category { return p.doc.Category(p.owner) }
func (p *Paragraph) Text() string     { return p.text }
