// Package query layers convenience lookup over a built document:
// dotted-path getters for keys and a small fluent row query over
// tables, with expression filters.
package query

import (
	"strings"

	"github.com/arf-format/go-arf/ir"
)

// categoryAt walks a dotted category path from root. The empty path is
// root itself.
func categoryAt(doc *ir.Document, path string) *ir.Category {
	c := doc.Root()
	if path == "" {
		return c
	}
	for _, seg := range strings.Split(path, ".") {
		if c = c.Child(seg); c == nil {
			return nil
		}
	}
	return c
}

// Get resolves a dotted path whose last segment is a key name, e.g.
// "world.physics.gravity".
func Get(doc *ir.Document, path string) (*ir.Value, bool) {
	i := strings.LastIndexByte(path, '.')
	catPath, name := "", path
	if i >= 0 {
		catPath, name = path[:i], path[i+1:]
	}
	c := categoryAt(doc, catPath)
	if c == nil {
		return nil, false
	}
	k := c.Key(name)
	if k == nil {
		return nil, false
	}
	return k.Value(), true
}

func GetString(doc *ir.Document, path string) (string, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func GetInt(doc *ir.Document, path string) (int64, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

func GetFloat(doc *ir.Document, path string) (float64, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return 0, false
	}
	return v.AsFloat()
}

func GetBool(doc *ir.Document, path string) (bool, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

func GetStrings(doc *ir.Document, path string) ([]string, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	return v.Strings()
}

func GetInts(doc *ir.Document, path string) ([]int64, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	return v.Ints()
}

func GetFloats(doc *ir.Document, path string) ([]float64, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	return v.Floats()
}
