// Package resolve walks a built document along a structured address to
// a single value reference, or fails fast with the exact step and kind
// of the violation.
package resolve

import "github.com/arf-format/go-arf/ir"

type StepKind int

const (
	StepTop StepKind = iota
	StepSub
	StepKey
	StepKeyID
	StepTable
	StepLocalTable
	StepRow
	StepColumn
	StepColumnID
	StepIndex
)

func (k StepKind) String() string {
	return map[StepKind]string{
		StepTop:        "top",
		StepSub:        "sub",
		StepKey:        "key",
		StepKeyID:      "key_id",
		StepTable:      "table",
		StepLocalTable: "local_table",
		StepRow:        "row",
		StepColumn:     "column",
		StepColumnID:   "column_id",
		StepIndex:      "index",
	}[k]
}

// Step is one typed instruction of an address. Name, ID and Ord are
// interpreted per Kind.
type Step struct {
	Kind StepKind
	Name string
	ID   int32
	Ord  int
}

// Address is an ordered step list built fluently from Root. The
// builder never validates; all checking happens during resolution.
type Address struct {
	steps []Step
}

func Root() Address {
	return Address{}
}

func (a Address) Steps() []Step { return a.steps }

func (a Address) push(s Step) Address {
	steps := a.steps[:len(a.steps):len(a.steps)]
	return Address{steps: append(steps, s)}
}

// Top enters a direct child of root by name. Legal only before any
// category descent.
func (a Address) Top(name string) Address {
	return a.push(Step{Kind: StepTop, Name: name})
}

// Sub enters a subcategory of the current category by name.
func (a Address) Sub(name string) Address {
	return a.push(Step{Kind: StepSub, Name: name})
}

// Key selects a key of the current category by name, setting the value
// cursor.
func (a Address) Key(name string) Address {
	return a.push(Step{Kind: StepKey, Name: name})
}

// KeyID selects a key by id; the key must be owned by the current
// category.
func (a Address) KeyID(id ir.KeyID) Address {
	return a.push(Step{Kind: StepKeyID, ID: int32(id)})
}

// Table selects a table by id; the table must be owned by the current
// category.
func (a Address) Table(id ir.TableID) Address {
	return a.push(Step{Kind: StepTable, ID: int32(id)})
}

// LocalTable selects the n-th table of the current category.
func (a Address) LocalTable(n int) Address {
	return a.push(Step{Kind: StepLocalTable, Ord: n})
}

// Row selects a row by id; the row must belong to the current table.
func (a Address) Row(id ir.RowID) Address {
	return a.push(Step{Kind: StepRow, ID: int32(id)})
}

// Column selects a cell of the current row through the table's column
// schema, by name, setting the value cursor.
func (a Address) Column(name string) Address {
	return a.push(Step{Kind: StepColumn, Name: name})
}

// ColumnID selects a cell of the current row by column id.
func (a Address) ColumnID(id ir.ColumnID) Address {
	return a.push(Step{Kind: StepColumnID, ID: int32(id)})
}

// Index narrows the value cursor into an array element.
func (a Address) Index(i int) Address {
	return a.push(Step{Kind: StepIndex, Ord: i})
}
