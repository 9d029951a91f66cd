package ir

// Document owns the root category (id 0, unnamed, always present) plus
// flat id-indexed registries for every node ever materialized. Nodes
// are created once, in a single materialization pass; ids are never
// reused. A built document is safe for unlimited concurrent reads.
type Document struct {
	categories []*Category
	keys       []*Key
	tables     []*Table
	columns    []*Column
	rows       []*Row
	comments   []*Comment
	paragraphs []*Paragraph
}

func NewDocument() *Document {
	d := &Document{}
	d.categories = append(d.categories, &Category{
		doc:    d,
		id:     RootCategory,
		parent: NoCategory,
	})
	return d
}

func (d *Document) Root() *Category {
	return d.categories[RootCategory]
}

func (d *Document) Category(id CategoryID) *Category {
	if id < 0 || int(id) >= len(d.categories) {
		return nil
	}
	return d.categories[id]
}

func (d *Document) Key(id KeyID) *Key {
	if id < 0 || int(id) >= len(d.keys) {
		return nil
	}
	return d.keys[id]
}

func (d *Document) Table(id TableID) *Table {
	if id < 0 || int(id) >= len(d.tables) {
		return nil
	}
	return d.tables[id]
}

func (d *Document) Column(id ColumnID) *Column {
	if id < 0 || int(id) >= len(d.columns) {
		return nil
	}
	return d.columns[id]
}

func (d *Document) Row(id RowID) *Row {
	if id < 0 || int(id) >= len(d.rows) {
		return nil
	}
	return d.rows[id]
}

func (d *Document) Comment(id CommentID) *Comment {
	if id < 0 || int(id) >= len(d.comments) {
		return nil
	}
	return d.comments[id]
}

func (d *Document) Paragraph(id ParagraphID) *Paragraph {
	if id < 0 || int(id) >= len(d.paragraphs) {
		return nil
	}
	return d.paragraphs[id]
}

func (d *Document) CategoryCount() int  { return len(d.categories) }
func (d *Document) KeyCount() int       { return len(d.keys) }
func (d *Document) TableCount() int     { return len(d.tables) }
func (d *Document) ColumnCount() int    { return len(d.columns) }
func (d *Document) RowCount() int       { return len(d.rows) }
func (d *Document) CommentCount() int   { return len(d.comments) }
func (d *Document) ParagraphCount() int { return len(d.paragraphs) }

// TopCategory finds a direct child of root by name.
func (d *Document) TopCategory(name string) *Category {
	return d.Root().Child(name)
}

// AddCategory materializes a subcategory of parent and records the open
// marker in the parent's declared items.
func (d *Document) AddCategory(parent CategoryID, name string) *Category {
	p := d.Category(parent)
	c := &Category{
		doc:    d,
		id:     CategoryID(len(d.categories)),
		name:   name,
		parent: parent,
		depth:  p.depth + 1,
	}
	d.categories = append(d.categories, c)
	p.children = append(p.children, c.id)
	p.items = append(p.items, Item{Kind: ItemSubOpen, ID: int32(c.id)})
	return c
}

// NoteSubClose records an explicit close marker for c in its parent's
// declared items. Implicit closes leave no marker.
func (d *Document) NoteSubClose(id CategoryID) {
	c := d.Category(id)
	if c == nil || c.IsRoot() {
		return
	}
	p := d.Category(c.parent)
	p.items = append(p.items, Item{Kind: ItemSubClose, ID: int32(id)})
}

// AddKey materializes a key. The caller is responsible for duplicate
// rejection within the owning category.
func (d *Document) AddKey(owner CategoryID, name string, v Value) *Key {
	o := d.Category(owner)
	k := &Key{
		doc:   d,
		id:    KeyID(len(d.keys)),
		name:  name,
		owner: owner,
		value: v,
	}
	d.keys = append(d.keys, k)
	o.keys = append(o.keys, k.id)
	o.items = append(o.items, Item{Kind: ItemKey, ID: int32(k.id)})
	return k
}

func (d *Document) AddTable(owner CategoryID) *Table {
	o := d.Category(owner)
	t := &Table{
		doc:   d,
		id:    TableID(len(d.tables)),
		owner: owner,
	}
	d.tables = append(d.tables, t)
	o.tables = append(o.tables, t.id)
	o.items = append(o.items, Item{Kind: ItemTable, ID: int32(t.id)})
	return t
}

func (d *Document) AddColumn(table TableID, name string, typ ValueType, asc Ascription, declaredTok string, sem Semantic) *Column {
	t := d.Table(table)
	c := &Column{
		doc:         d,
		id:          ColumnID(len(d.columns)),
		table:       table,
		index:       len(t.columns),
		name:        name,
		typ:         typ,
		ascription:  asc,
		declaredTok: declaredTok,
		semantic:    sem,
	}
	d.columns = append(d.columns, c)
	t.columns = append(t.columns, c.id)
	return c
}

// AddRow materializes a row into a table, recording the category that
// declared it (possibly a nested subcategory of the table's owner).
func (d *Document) AddRow(table TableID, declaredIn CategoryID, cells []Value) *Row {
	t := d.Table(table)
	r := &Row{
		doc:        d,
		id:         RowID(len(d.rows)),
		table:      table,
		declaredIn: declaredIn,
		cells:      cells,
	}
	d.rows = append(d.rows, r)
	t.rows = append(t.rows, r.id)
	dc := d.Category(declaredIn)
	dc.items = append(dc.items, Item{Kind: ItemRow, ID: int32(r.id)})
	r.refresh()
	return r
}

func (d *Document) AddComment(owner CategoryID, text string) *Comment {
	o := d.Category(owner)
	c := &Comment{
		doc:   d,
		id:    CommentID(len(d.comments)),
		owner: owner,
		text:  text,
	}
	d.comments = append(d.comments, c)
	o.items = append(o.items, Item{Kind: ItemComment, ID: int32(c.id)})
	return c
}

func (d *Document) AddParagraph(owner CategoryID, text string) *Paragraph {
	p := &Paragraph{
		doc:   d,
		id:    ParagraphID(len(d.paragraphs)),
		owner: owner,
		text:  text,
	}
	d.paragraphs = append(d.paragraphs, p)
	o := d.Category(owner)
	o.items = append(o.items, Item{Kind: ItemParagraph, ID: int32(p.id)})
	return p
}

// refresh recomputes a row's contamination from its cells.
func (r *Row) refresh() {
	r.contamination = Clean
	for i := range r.cells {
		c := &r.cells[i]
		if c.Semantic == Invalid || c.Contamination == Contaminated {
			r.contamination = Contaminated
			return
		}
	}
}

// refresh recomputes a table's contamination from its columns and rows.
func (t *Table) refresh() {
	t.contamination = Clean
	for _, id := range t.columns {
		c := t.doc.Column(id)
		if c.semantic == Invalid || c.contamination == Contaminated {
			t.contamination = Contaminated
			return
		}
	}
	for _, id := range t.rows {
		r := t.doc.Row(id)
		if r.contamination == Contaminated {
			t.contamination = Contaminated
			return
		}
	}
}

// refresh recomputes a category's contamination from its direct
// children: keys, tables and subcategories.
func (c *Category) refresh() {
	c.contamination = Clean
	for _, id := range c.keys {
		k := c.doc.Key(id)
		if k.value.Semantic == Invalid || k.value.Contamination == Contaminated {
			c.contamination = Contaminated
			return
		}
	}
	for _, id := range c.tables {
		if c.doc.Table(id).contamination == Contaminated {
			c.contamination = Contaminated
			return
		}
	}
	for _, id := range c.children {
		if c.doc.Category(id).contamination == Contaminated {
			c.contamination = Contaminated
			return
		}
	}
}

// RefreshUp recomputes contamination from c upward. Propagation is
// strictly upward and stops below the root, which stays clean.
func (d *Document) RefreshUp(c *Category) {
	for c != nil && !c.IsRoot() {
		c.refresh()
		c = c.Parent()
	}
}

// RefreshAll recomputes contamination for the whole document, bottom
// up. Category ids grow strictly downward in the tree, so a reverse id
// sweep sees every child before its parent.
func (d *Document) RefreshAll() {
	for _, r := range d.rows {
		r.refresh()
	}
	for _, t := range d.tables {
		t.refresh()
	}
	for i := len(d.categories) - 1; i >= 1; i-- {
		d.categories[i].refresh()
	}
}

// RefreshTable recomputes a table's contamination and propagates the
// result through the owning category chain.
func (d *Document) RefreshTable(id TableID) {
	t := d.Table(id)
	if t == nil {
		return
	}
	t.refresh()
	d.RefreshUp(t.Owner())
}
