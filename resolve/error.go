package resolve

import "fmt"

type Kind int

const (
	KindNoCategoryContext Kind = iota
	KindNoTableContext
	KindNoRowContext
	KindStructureAfterValue
	KindTopCategoryAfterCategory
	KindTopCategoryNotFound
	KindSubCategoryNotFound
	KindKeyNotFound
	KindTableNotFound
	KindRowNotOwned
	KindColumnNotFound
	KindNotAnArray
	KindIndexOutOfBounds
	KindNoValue
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindNoCategoryContext:        "no_category_context",
		KindNoTableContext:           "no_table_context",
		KindNoRowContext:             "no_row_context",
		KindStructureAfterValue:      "structure_after_value",
		KindTopCategoryAfterCategory: "top_category_after_category",
		KindTopCategoryNotFound:      "top_category_not_found",
		KindSubCategoryNotFound:      "sub_category_not_found",
		KindKeyNotFound:              "key_not_found",
		KindTableNotFound:            "table_not_found",
		KindRowNotOwned:              "row_not_owned",
		KindColumnNotFound:           "column_not_found",
		KindNotAnArray:               "not_an_array",
		KindIndexOutOfBounds:         "index_out_of_bounds",
		KindNoValue:                  "no_value",
	}[k]
	if ok {
		return s
	}
	return "<unknown resolve error>"
}

// Error reports the first violated step: its index in the address and
// the kind of violation. Resolution is fail-fast, so there is exactly
// one.
type Error struct {
	Step int
	Kind Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolve: step %d: %s", e.Step, e.Kind)
}

func errAt(step int, kind Kind) *Error {
	return &Error{Step: step, Kind: kind}
}
