package token

import "strings"

// SplitFields splits a table header or row line on runs of two or more
// spaces. A single embedded space is content, so cell literals like
// "green goblin" survive intact.
func SplitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		spaces  int
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' {
			spaces++
			if spaces >= 2 && current.Len() > 0 {
				fields = append(fields, strings.TrimSpace(current.String()))
				current.Reset()
				spaces = 0
			}
			continue
		}
		if spaces == 1 {
			current.WriteByte(' ')
		}
		spaces = 0
		current.WriteByte(c)
	}
	if current.Len() > 0 {
		fields = append(fields, strings.TrimSpace(current.String()))
	}
	return fields
}

// headerField splits a header unit into column name and optional
// declared-type token at the first colon.
func headerField(s string) Field {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return Field{Name: s[:i], TypeTok: s[i+1:]}
	}
	return Field{Name: s}
}
