package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Scan        bool
	Materialize bool
	Resolve     bool
	Query       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Scan = boolEnv("ARF_DEBUG_SCAN")
	d.Materialize = boolEnv("ARF_DEBUG_MATERIALIZE")
	d.Resolve = boolEnv("ARF_DEBUG_RESOLVE")
	d.Query = boolEnv("ARF_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Scan() bool {
	return d.Scan
}
func Materialize() bool {
	return d.Materialize
}
func Resolve() bool {
	return d.Resolve
}
func Query() bool {
	return d.Query
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
