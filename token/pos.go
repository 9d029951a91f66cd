package token

import (
	"fmt"
	"sort"
)

// PosDoc maps byte offsets in a scanned document to line/column
// coordinates via an index of newline offsets.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol maps a byte offset to zero-based line and column.
func (p *PosDoc) LineCol(off int) (int, int) {
	line := sort.Search(len(p.n), func(i int) bool {
		return p.n[i] >= off
	})
	if line == 0 {
		return 0, off
	}
	return line, off - p.n[line-1] - 1
}

func (d *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: d,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	if p.D == nil {
		return fmt.Sprintf("offset %d", p.I)
	}
	l, c := p.LineCol()
	return fmt.Sprintf("line %d, col %d", l, c)
}
