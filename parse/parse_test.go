package parse

import (
	"testing"

	"github.com/arf-format/go-arf/diag"
	"github.com/arf-format/go-arf/ir"
)

func kinds(ds []diag.Diagnostic) []diag.Kind {
	ks := make([]diag.Kind, 0, len(ds))
	for i := range ds {
		ks = append(ks, ds[i].Kind)
	}
	return ks
}

func hasKind(ds []diag.Diagnostic, k diag.Kind) bool {
	for i := range ds {
		if ds[i].Kind == k {
			return true
		}
	}
	return false
}

func TestLoadEmpty(t *testing.T) {
	doc, ds := Load(nil)
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	if doc.CategoryCount() != 1 || !doc.Root().IsRoot() {
		t.Fatal("empty input must still yield a root")
	}
}

func TestLoadAncestryTerminatesAtRoot(t *testing.T) {
	doc, _ := Load([]byte("a:\n:b\n:c\nd:\n"))
	for i := 0; i < doc.CategoryCount(); i++ {
		c := doc.Category(ir.CategoryID(i))
		steps := 0
		for !c.IsRoot() {
			c = c.Parent()
			steps++
			if steps > doc.CategoryCount() {
				t.Fatalf("category %d: ancestor chain does not reach root", i)
			}
		}
	}
}

func TestDuplicateKeys(t *testing.T) {
	doc, ds := Load([]byte("a:\nx = 1\nx = 2\nb:\nx = 3\n"))
	if !hasKind(ds, diag.KindDuplicateKey) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	// First occurrence wins.
	a := doc.TopCategory("a")
	if s, _ := a.Key("x").Value().AsString(); s != "1" {
		t.Errorf("a.x = %q", s)
	}
	// Same name in a different category is fine.
	if doc.TopCategory("b").Key("x") == nil {
		t.Error("b.x missing")
	}
	if len(ds) != 1 {
		t.Errorf("diags = %v", kinds(ds))
	}
}

func TestTypeMismatchCollapsesToString(t *testing.T) {
	doc, ds := Load([]byte("a:\nx:int = hello\n"))
	if !hasKind(ds, diag.KindTypeMismatch) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	v := doc.TopCategory("a").Key("x").Value()
	if v.Type != ir.TypeString || v.Str != "hello" {
		t.Errorf("collapsed to %s %q", v.Type, v.Str)
	}
	if v.Semantic != ir.Invalid || v.Ascription != ir.Declared {
		t.Errorf("got %s/%s", v.Semantic, v.Ascription)
	}
	if v.DeclaredType != ir.TypeInt {
		t.Errorf("declared type %s", v.DeclaredType)
	}
}

func TestInvalidDeclaredType(t *testing.T) {
	doc, ds := Load([]byte("a:\nx:dragon = 42\n"))
	if !hasKind(ds, diag.KindInvalidDeclaredType) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	// Default policy: tacit string fallback, still usable.
	v := doc.TopCategory("a").Key("x").Value()
	if v.Type != ir.TypeString || v.Ascription != ir.Tacit || v.Semantic != ir.Valid {
		t.Errorf("got %s/%s/%s", v.Type, v.Ascription, v.Semantic)
	}

	doc, _ = Load([]byte("a:\nx:dragon = 42\n"), RejectUnknownTypes(true))
	if doc.TopCategory("a").Key("x").Value().Semantic != ir.Invalid {
		t.Error("rejecting load must mark the key invalid")
	}
}

func TestTableCellMismatchContaminates(t *testing.T) {
	doc, ds := Load([]byte("m:\n# a:int\nhello\n"))
	if !hasKind(ds, diag.KindTypeMismatch) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	m := doc.TopCategory("m")
	tb := doc.Table(m.Tables()[0])
	r := tb.Row(0)
	cell := r.Cell(0)
	if cell.Semantic != ir.Invalid {
		t.Errorf("cell %s", cell.Semantic)
	}
	if !r.Valid() || !r.Contaminated() {
		t.Errorf("row valid=%v contaminated=%v", r.Valid(), r.Contaminated())
	}
	if !tb.Valid() || !tb.Contaminated() {
		t.Errorf("table valid=%v contaminated=%v", tb.Valid(), tb.Contaminated())
	}
	if !m.Contaminated() || doc.Root().Contaminated() {
		t.Errorf("category contaminated=%v root=%v", m.Contaminated(), doc.Root().Contaminated())
	}
}

func TestArrays(t *testing.T) {
	doc, ds := Load([]byte("a:\ngood:int[] = 1|2|3\nbad:int[] = 1|nope|3\nholes:str[] = a||b|\ntacit = 1|2|3\n"))
	if !hasKind(ds, diag.KindTypeMismatch) || len(ds) != 1 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	a := doc.TopCategory("a")

	good := a.Key("good").Value()
	if ints, _ := good.Ints(); len(ints) != 3 || good.Contaminated() {
		t.Errorf("good = %v contaminated=%v", ints, good.Contaminated())
	}

	bad := a.Key("bad").Value()
	if bad.Semantic != ir.Valid || !bad.Contaminated() {
		t.Errorf("bad %s contaminated=%v", bad.Semantic, bad.Contaminated())
	}
	if bad.Elem(1).Semantic != ir.Invalid {
		t.Errorf("bad[1] %s", bad.Elem(1).Semantic)
	}

	holes := a.Key("holes").Value()
	if holes.Len() != 4 || !holes.Elem(1).Missing || !holes.Elem(3).Missing {
		t.Errorf("holes: len=%d", holes.Len())
	}
	if holes.Semantic != ir.Valid || holes.Contaminated() {
		t.Errorf("holes %s contaminated=%v", holes.Semantic, holes.Contaminated())
	}

	tacit := a.Key("tacit").Value()
	if tacit.IsArray() || tacit.Str != "1|2|3" {
		t.Errorf("tacit = %s %q", tacit.Type, tacit.Str)
	}
}

func TestNamedCloseCollapsesScopes(t *testing.T) {
	doc, ds := Load([]byte("top:\n:a\n:b\n:c\n/a\nx = 1\n"))
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	// /a pops c, b and a; x lands in top.
	top := doc.TopCategory("top")
	if top.Key("x") == nil {
		t.Error("x should land in top after the named close")
	}
	if c := top.Child("a").Child("b").Child("c"); c == nil {
		t.Error("nested categories missing")
	}
}

func TestMismatchedCloseDiagnosed(t *testing.T) {
	doc, ds := Load([]byte("top:\n:a\n/b\nx = 1\n"))
	if !hasKind(ds, diag.KindInvalidCategoryClose) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	// The stack is untouched: x lands in a.
	if doc.TopCategory("top").Child("a").Key("x") == nil {
		t.Error("x should land in a")
	}
}

func TestDepthLimit(t *testing.T) {
	doc, ds := Load([]byte("a:\n:b\n:c\nx = 1\n/c\ny = 2\n"), MaxCategoryDepth(2))
	if !hasKind(ds, diag.KindDepthExceeded) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	b := doc.TopCategory("a").Child("b")
	if b == nil {
		t.Fatal("b missing")
	}
	// The overflowing branch is dropped wholesale.
	if b.Child("c") != nil || b.Key("x") != nil {
		t.Error("contents of the dead branch leaked")
	}
	if b.Key("y") == nil {
		t.Error("materialization should resume after the dead branch closes")
	}
}

func TestHierarchicalTableContinuation(t *testing.T) {
	src := `monsters:
# name  hp:int
dragon  400
:goblins
snaga  12
muzgash  15
/goblins
`
	doc, ds := Load([]byte(src))
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	m := doc.TopCategory("monsters")
	if len(m.Tables()) != 1 {
		t.Fatalf("tables = %d", len(m.Tables()))
	}
	tb := doc.Table(m.Tables()[0])
	if tb.RowCount() != 3 {
		t.Fatalf("rows = %d", tb.RowCount())
	}
	// Row order is document order regardless of contributor.
	if s, _ := tb.Row(1).CellByName("name").AsString(); s != "snaga" {
		t.Errorf("row 1 name = %q", s)
	}
	goblins := m.Child("goblins")
	if tb.Row(1).DeclaredIn() != goblins {
		t.Error("row 1 should be declared in goblins")
	}
	p := tb.PartitionFor(goblins.ID())
	if p == nil || len(p.DirectRows()) != 2 {
		t.Fatalf("goblins partition = %v", p)
	}
}

func TestSubTableDoesNotLeakToParent(t *testing.T) {
	src := `m:
# a
one
:sub
# b
two
/sub
three
`
	doc, _ := Load([]byte(src))
	m := doc.TopCategory("m")
	outer := doc.Table(m.Tables()[0])
	inner := doc.Table(m.Child("sub").Tables()[0])
	if outer.RowCount() != 2 || inner.RowCount() != 1 {
		t.Errorf("outer=%d inner=%d", outer.RowCount(), inner.RowCount())
	}
	if s, _ := outer.Row(1).Cell(0).AsString(); s != "three" {
		t.Errorf("outer row 1 = %q", s)
	}
}

func TestShortRowPadsMissing(t *testing.T) {
	doc, ds := Load([]byte("m:\n# a  b:int\nonly\n"))
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	r := doc.Table(doc.TopCategory("m").Tables()[0]).Row(0)
	if r.CellCount() != 2 || !r.Cell(1).Missing {
		t.Errorf("cells=%d missing=%v", r.CellCount(), r.Cell(1).Missing)
	}
	if r.Contaminated() {
		t.Error("missing cell must not contaminate")
	}
}

func TestEditPaddedCellKeepsColumnType(t *testing.T) {
	doc, ds := Load([]byte("m:\n# a  b:int\nonly\n"))
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	r := doc.Table(doc.TopCategory("m").Tables()[0]).Row(0)
	if !doc.SetCellValue(r.ID(), 1, "hello") {
		t.Fatal("SetCellValue failed")
	}
	// The padded cell carries the column's declared type, so the edit
	// re-coerces against int and fails.
	c := r.Cell(1)
	if c.Semantic != ir.Invalid || c.Type != ir.TypeString || c.DeclaredType != ir.TypeInt {
		t.Fatalf("cell after edit: %s %s declared=%s", c.Semantic, c.Type, c.DeclaredType)
	}
	if !r.Contaminated() {
		t.Error("bad edit must contaminate the row")
	}

	if !doc.SetCellValue(r.ID(), 1, "7") {
		t.Fatal("second SetCellValue failed")
	}
	c = r.Cell(1)
	if c.Semantic != ir.Valid || c.Type != ir.TypeInt || c.Int != 7 {
		t.Fatalf("cell after fix: %s %s %d", c.Semantic, c.Type, c.Int)
	}
	if r.Contaminated() {
		t.Error("fixed cell must clear row contamination")
	}
}

func TestOverlongRowDiagnosed(t *testing.T) {
	doc, ds := Load([]byte("m:\n# a  b\none  two  three\n"))
	if !hasKind(ds, diag.KindExtraCells) {
		t.Fatalf("diags = %v", kinds(ds))
	}
	// Excess cells are dropped; the row keeps the schema's width.
	r := doc.Table(doc.TopCategory("m").Tables()[0]).Row(0)
	if r.CellCount() != 2 {
		t.Fatalf("cells = %d", r.CellCount())
	}
	if s, _ := r.Cell(1).AsString(); s != "two" {
		t.Errorf("cell 1 = %q", s)
	}
}

func TestCommentsAndParagraphs(t *testing.T) {
	src := `// a file comment
world:
The old kingdom sits
beyond the mountains.

gravity = 9.8
`
	doc, ds := Load([]byte(src))
	if len(ds) != 0 {
		t.Fatalf("diags = %v", kinds(ds))
	}
	if doc.CommentCount() != 1 || doc.Comment(0).Owner() != doc.Root() {
		t.Error("comment should attach to root")
	}
	if doc.ParagraphCount() != 1 {
		t.Fatalf("paragraphs = %d", doc.ParagraphCount())
	}
	p := doc.Paragraph(0)
	if p.Owner().Name() != "world" || p.Text() != "The old kingdom sits\nbeyond the mountains." {
		t.Errorf("paragraph %q under %q", p.Text(), p.Owner().Name())
	}
	if doc.TopCategory("world").Key("gravity") == nil {
		t.Error("gravity missing")
	}
}

func TestItemsPreserveAuthoringOrder(t *testing.T) {
	src := `a:
x = 1
// note
:sub
/sub
y = 2
`
	doc, _ := Load([]byte(src))
	items := doc.TopCategory("a").Items()
	want := []ir.ItemKind{ir.ItemKey, ir.ItemComment, ir.ItemSubOpen, ir.ItemSubClose, ir.ItemKey}
	if len(items) != len(want) {
		t.Fatalf("items = %v", items)
	}
	for i, k := range want {
		if items[i].Kind != k {
			t.Errorf("item %d = %s, want %s", i, items[i].Kind, k)
		}
	}
}
