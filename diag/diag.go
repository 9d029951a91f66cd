// Package diag carries the diagnostics a load emits alongside the
// document. Diagnostics never abort materialization: the offending
// construct degrades per its own rule and the load continues.
package diag

import (
	"fmt"
	"strings"

	"github.com/arf-format/go-arf/token"
)

type Kind int

const (
	KindTypeMismatch Kind = iota
	KindInvalidDeclaredType
	KindInvalidCategoryClose
	KindDepthExceeded
	KindDuplicateKey
	KindExtraCells
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindTypeMismatch:         "type_mismatch",
		KindInvalidDeclaredType:  "invalid_declared_type",
		KindInvalidCategoryClose: "invalid_category_close",
		KindDepthExceeded:        "depth_exceeded",
		KindDuplicateKey:         "duplicate_key",
		KindExtraCells:           "extra_cells",
	}[k]
	if ok {
		return s
	}
	return "<unknown diagnostic>"
}

// Diagnostic is one recoverable problem found during a load, with the
// source position of the offending line.
type Diagnostic struct {
	Kind Kind
	Pos  *token.Pos
	Msg  string
}

func (d *Diagnostic) Error() string {
	if d.Pos != nil {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Msg)
}

func Newf(k Kind, pos *token.Pos, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: k, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Summary renders a diagnostic list as one line per entry.
func Summary(ds []Diagnostic) string {
	var sb strings.Builder
	for i := range ds {
		sb.WriteString(ds[i].Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}
