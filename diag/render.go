package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type colors struct {
	Kind func(string, ...any) string
	Pos  func(string, ...any) string
	Msg  func(string, ...any) string
}

func newColors() *colors {
	return &colors{
		Kind: color.RGB(196, 96, 16).SprintfFunc(),
		Pos:  color.RGB(128, 168, 196).SprintfFunc(),
		Msg:  fmt.Sprintf,
	}
}

func plainColors() *colors {
	return &colors{Kind: fmt.Sprintf, Pos: fmt.Sprintf, Msg: fmt.Sprintf}
}

// Render writes the diagnostics to w, colorized when w is a terminal.
func Render(w io.Writer, ds []Diagnostic) {
	cs := plainColors()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		cs = newColors()
	}
	for i := range ds {
		d := &ds[i]
		if d.Pos != nil {
			fmt.Fprintf(w, "%s %s %s\n",
				cs.Pos("%s:", d.Pos),
				cs.Kind("%s:", d.Kind),
				cs.Msg("%s", d.Msg))
			continue
		}
		fmt.Fprintf(w, "%s %s\n", cs.Kind("%s:", d.Kind), cs.Msg("%s", d.Msg))
	}
}
