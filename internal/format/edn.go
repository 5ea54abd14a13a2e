package format

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes the subset of EDN our payloads need: maps with keyword keys,
// vectors, strings, numbers, booleans and nil.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var sb strings.Builder
	e := edn{sb: &sb, pretty: pretty}
	e.value(x, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type edn struct {
	sb     *strings.Builder
	pretty bool
}

func (e edn) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.sb.WriteString("nil")
	case bool:
		e.sb.WriteString(strconv.FormatBool(t))
	case string:
		e.sb.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			e.sb.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			e.sb.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case []any:
		e.seq('[', ']', len(t), depth, func(i int) { e.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), depth, func(i int) {
			e.sb.WriteString(keyword(keys[i]))
			e.sb.WriteByte(' ')
			e.value(t[keys[i]], depth+1)
		})
	default:
		e.sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func (e edn) seq(open, close byte, n, depth int, item func(int)) {
	e.sb.WriteByte(open)
	if n == 0 {
		e.sb.WriteByte(close)
		return
	}
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.sb.WriteByte('\n')
			e.sb.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			e.sb.WriteByte(' ')
		}
		item(i)
	}
	if e.pretty {
		e.sb.WriteByte('\n')
		e.sb.WriteString(strings.Repeat("  ", depth))
	}
	e.sb.WriteByte(close)
}

// keyword turns a json field name into an EDN keyword (vhsEnabled → :vhsEnabled).
func keyword(s string) string {
	s = strings.Join(strings.Fields(s), "-")
	if s == "" {
		return `:_`
	}
	return ":" + s
}
