package ir

// Node ids are small stable integers indexing the document's arenas.
// Ids are assigned once during materialization and never reused.
type (
	CategoryID  int32
	KeyID       int32
	TableID     int32
	ColumnID    int32
	RowID       int32
	CommentID   int32
	ParagraphID int32
)

// Root is always category 0.
const RootCategory CategoryID = 0

const (
	NoCategory CategoryID = -1
	NoKey      KeyID      = -1
	NoTable    TableID    = -1
	NoColumn   ColumnID   = -1
	NoRow      RowID      = -1
)

// ItemKind discriminates one entry of a category's ordered declared
// items.
type ItemKind int

const (
	ItemKey ItemKind = iota
	ItemComment
	ItemParagraph
	ItemTable
	ItemRow
	ItemSubOpen
	ItemSubClose
)

func (k ItemKind) String() string {
	return map[ItemKind]string{
		ItemKey:       "Key",
		ItemComment:   "Comment",
		ItemParagraph: "Paragraph",
		ItemTable:     "Table",
		ItemRow:       "Row",
		ItemSubOpen:   "SubOpen",
		ItemSubClose:  "SubClose",
	}[k]
}

// Item is one declared item of a category in authoring order. ID is the
// id of the referenced node, interpreted per Kind (for ItemSubClose it
// is the closed category).
type Item struct {
	Kind ItemKind
	ID   int32
}
