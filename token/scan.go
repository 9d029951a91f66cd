package token

import (
	"strings"
)

// scan state for one category depth. seen survives deactivation so that
// subcategories opened later can continue the most recent table of this
// scope.
type frame struct {
	name   string
	active bool
	seen   bool
}

type scanner struct {
	pd     *PosDoc
	events []Event

	stack []frame // stack[0] is the root scope

	para    []string
	paraPos *Pos
}

// Scan turns raw text into an ordered sequence of untyped structural
// events. Scanning is pure and total: it never fails, malformed lines
// degrade to best-effort events and are diagnosed downstream.
//
// The returned PosDoc resolves event offsets to line/column pairs.
func Scan(dst []Event, src []byte) ([]Event, *PosDoc) {
	s := &scanner{
		pd:     NewPosDoc(src),
		events: dst,
		stack:  []frame{{}},
	}
	off := 0
	for off <= len(src) {
		end := off
		for end < len(src) && src[end] != '\n' {
			end++
		}
		if off == len(src) && end == off {
			break
		}
		s.line(string(src[off:end]), off)
		off = end + 1
	}
	s.flushPara()
	return s.events, s.pd
}

func (s *scanner) cur() *frame {
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) emit(ev Event) {
	s.flushPara()
	s.events = append(s.events, ev)
}

func (s *scanner) flushPara() {
	if len(s.para) == 0 {
		return
	}
	ev := Event{
		Type: EParagraph,
		Pos:  s.paraPos,
		Text: strings.Join(s.para, "\n"),
	}
	s.para = nil
	s.paraPos = nil
	s.events = append(s.events, ev)
}

func (s *scanner) line(raw string, off int) {
	line := strings.TrimRight(raw, "\r")
	trimmed := strings.TrimSpace(line)
	pos := s.pd.Pos(off + indentOf(line))

	switch {
	case trimmed == "":
		// A blank line ends table mode at the current depth and
		// terminates any open paragraph run.
		s.flushPara()
		s.cur().active = false

	case strings.HasPrefix(trimmed, "//"):
		s.emit(Event{Type: EComment, Pos: pos, Text: trimmed[2:]})

	case trimmed[0] == ':':
		name := strings.TrimSpace(strings.TrimSuffix(trimmed[1:], ":"))
		s.openSub(name)
		s.emit(Event{Type: ECategoryOpen, Pos: pos, Name: name})

	case trimmed[0] == '/':
		name := strings.TrimSpace(trimmed[1:])
		s.close(name)
		s.emit(Event{Type: ECategoryClose, Pos: pos, Name: name})

	case trimmed[0] == '#':
		fields := SplitFields(strings.TrimSpace(trimmed[1:]))
		ev := Event{Type: ETableHeader, Pos: pos}
		for _, f := range fields {
			ev.Fields = append(ev.Fields, headerField(f))
		}
		cur := s.cur()
		cur.active = true
		cur.seen = true
		s.emit(ev)

	case strings.HasSuffix(trimmed, ":") && !strings.ContainsRune(trimmed, '='):
		name := strings.TrimSpace(trimmed[:len(trimmed)-1])
		s.openTop(name)
		s.emit(Event{Type: ECategoryOpen, Pos: pos, Name: name, Top: true})

	case strings.ContainsRune(trimmed, '='):
		// A key/value assignment ends table mode at this depth.
		s.cur().active = false
		eq := strings.IndexByte(trimmed, '=')
		name := strings.TrimSpace(trimmed[:eq])
		lit := strings.TrimSpace(trimmed[eq+1:])
		ev := Event{Type: EKeyValue, Pos: pos, Name: name, Literal: lit}
		if ci := strings.IndexByte(name, ':'); ci >= 0 {
			ev.TypeTok = strings.TrimSpace(name[ci+1:])
			ev.Name = strings.TrimSpace(name[:ci])
		}
		s.emit(ev)

	case s.cur().active:
		ev := Event{Type: ETableRow, Pos: pos}
		for _, f := range SplitFields(trimmed) {
			ev.Fields = append(ev.Fields, Field{Name: f})
		}
		s.emit(ev)

	default:
		if len(s.para) == 0 {
			s.paraPos = pos
		}
		s.para = append(s.para, line)
	}
}

// openTop implicitly closes every open scope before opening a new
// top-level category under root.
func (s *scanner) openTop(name string) {
	s.stack = s.stack[:1]
	s.stack = append(s.stack, frame{name: name})
}

// openSub opens a subcategory of the current scope. Rows declared in it
// continue the most recent table of the parent scope, so the new frame
// starts active when the parent has seen a table.
func (s *scanner) openSub(name string) {
	parent := s.cur()
	s.stack = append(s.stack, frame{
		name:   name,
		active: parent.seen,
		seen:   parent.seen,
	})
}

// close pops scopes innermost-outward until a name match; the bare
// shorthand pops exactly one. An unmatched name leaves the stack intact
// (the materializer reports it).
func (s *scanner) close(name string) {
	if len(s.stack) <= 1 {
		return
	}
	if name == "" {
		s.stack = s.stack[:len(s.stack)-1]
		return
	}
	for i := len(s.stack) - 1; i >= 1; i-- {
		if s.stack[i].name == name {
			s.stack = s.stack[:i]
			return
		}
	}
}

func indentOf(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
