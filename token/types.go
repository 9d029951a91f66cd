package token

type EventType int

const (
	ECategoryOpen EventType = iota
	ECategoryClose
	ETableHeader
	ETableRow
	EKeyValue
	EComment
	EParagraph
)

func (t EventType) String() string {
	return map[EventType]string{
		ECategoryOpen:  "ECategoryOpen",
		ECategoryClose: "ECategoryClose",
		ETableHeader:   "ETableHeader",
		ETableRow:      "ETableRow",
		EKeyValue:      "EKeyValue",
		EComment:       "EComment",
		EParagraph:     "EParagraph",
	}[t]
}

// Field is one whitespace-run-delimited unit of a table header or row:
// a column declaration (Name plus optional TypeTok) for ETableHeader,
// a raw cell literal (in Name) for ETableRow.
type Field struct {
	Name    string
	TypeTok string
}

// Event is one untyped structural unit of an Arf document. The scanner
// emits events in authoring order; all typing and scope validation
// happens downstream.
type Event struct {
	Type EventType
	Pos  *Pos

	// ECategoryOpen: Name is the category name, Top is true for a
	// trailing-colon header (which closes all open scopes), false for
	// the leading-colon shorthand.
	// ECategoryClose: Name is empty for the bare `/` shorthand.
	// EKeyValue: Name, TypeTok (empty when tacit) and Literal.
	Name    string
	Top     bool
	TypeTok string
	Literal string

	// ETableHeader and ETableRow.
	Fields []Field

	// EComment and EParagraph, verbatim.
	Text string
}
