package ir

// partitionInfo is the per-category slice of a hierarchically continued
// table: the rows a category declared directly, plus the rows of all of
// its descendant contributors.
type partitionInfo struct {
	cat      CategoryID
	parent   CategoryID
	children []CategoryID

	directRows []RowID
	allRows    []RowID
}

// Partition is a read-only view of one contributing category's slice of
// a table.
type Partition struct {
	table *Table
	info  *partitionInfo
}

func (p *Partition) Category() *Category { return p.table.doc.Category(p.info.cat) }
func (p *Partition) Name() string        { return p.Category().Name() }

// DirectRows are the rows declared by this category itself.
func (p *Partition) DirectRows() []RowID { return p.info.directRows }

// Rows are the rows of this category and every descendant contributor,
// in document order.
func (p *Partition) Rows() []RowID { return p.info.allRows }

func (p *Partition) Parent() *Partition {
	if p.info.parent == NoCategory {
		return nil
	}
	return p.table.PartitionFor(p.info.parent)
}

func (p *Partition) Children() []*Partition {
	res := make([]*Partition, 0, len(p.info.children))
	for _, id := range p.info.children {
		if sub := p.table.PartitionFor(id); sub != nil {
			res = append(res, sub)
		}
	}
	return res
}

// RootPartition is the view anchored at the table's owning category; its
// Rows cover the whole table.
func (t *Table) RootPartition() *Partition {
	return t.PartitionFor(t.owner)
}

// PartitionFor returns the partition of one contributing category, or
// nil when the category contributed no rows and has no contributing
// descendants (the owner always has a partition).
func (t *Table) PartitionFor(id CategoryID) *Partition {
	t.partOnce.Do(t.buildPartitions)
	for i := range t.partitions {
		if t.partitions[i].cat == id {
			return &Partition{table: t, info: &t.partitions[i]}
		}
	}
	return nil
}

// Partitions lists all contributing categories' partitions, owner first,
// then contributors in first-contribution order.
func (t *Table) Partitions() []*Partition {
	t.partOnce.Do(t.buildPartitions)
	res := make([]*Partition, len(t.partitions))
	for i := range t.partitions {
		res[i] = &Partition{table: t, info: &t.partitions[i]}
	}
	return res
}

func (t *Table) buildPartitions() {
	d := t.doc

	// The owner always partitions, even over an empty table. Other
	// categories partition only when they lie on a path from the owner
	// to a row-declaring category.
	index := map[CategoryID]int{}
	add := func(id CategoryID) int {
		if i, ok := index[id]; ok {
			return i
		}
		parent := NoCategory
		if id != t.owner {
			parent = d.Category(id).parent
		}
		index[id] = len(t.partitions)
		t.partitions = append(t.partitions, partitionInfo{cat: id, parent: parent})
		return index[id]
	}
	add(t.owner)

	for _, rid := range t.rows {
		r := d.Row(rid)
		// Materialize the chain from the declaring category up to the
		// owner so intermediate categories partition too.
		chain := []CategoryID{}
		for cid := r.declaredIn; ; cid = d.Category(cid).parent {
			chain = append(chain, cid)
			if cid == t.owner {
				break
			}
		}
		for i := len(chain) - 1; i >= 0; i-- {
			add(chain[i])
		}
		i := index[r.declaredIn]
		t.partitions[i].directRows = append(t.partitions[i].directRows, rid)
	}

	// Wire child links, then roll rows up bottom-up. Children were
	// always added after their parents, so a reverse pass sees every
	// child before its parent.
	for i := range t.partitions {
		p := &t.partitions[i]
		if p.parent != NoCategory {
			j := index[p.parent]
			t.partitions[j].children = append(t.partitions[j].children, p.cat)
		}
	}
	rolled := map[CategoryID][]RowID{}
	for i := len(t.partitions) - 1; i >= 0; i-- {
		p := &t.partitions[i]
		rows := map[RowID]bool{}
		for _, rid := range p.directRows {
			rows[rid] = true
		}
		for _, sub := range p.children {
			for _, rid := range rolled[sub] {
				rows[rid] = true
			}
		}
		// Document order: filter the table's row list.
		for _, rid := range t.rows {
			if rows[rid] {
				p.allRows = append(p.allRows, rid)
			}
		}
		rolled[p.cat] = p.allRows
	}
}
