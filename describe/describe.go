// Package describe turns decoded records into ordered name/value pairs for
// display.
package describe

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

type Field struct {
	Name  string
	Value string
}

// Describer is implemented by every decoded record and register state.
type Describer interface {
	Fields() []Field
}

func String(name, value string) Field {
	return Field{Name: name, Value: value}
}

func Hex[I constraints.Integer](name string, v I) Field {
	return Field{Name: name, Value: fmt.Sprintf("%#x", v)}
}

func Dec[I constraints.Integer](name string, v I) Field {
	return Field{Name: name, Value: fmt.Sprint(v)}
}

// Indexed names each element prefix0, prefix1, ... and renders it in hex.
func Indexed[I constraints.Integer](prefix string, vals []I) []Field {
	fields := make([]Field, len(vals))
	for i, v := range vals {
		fields[i] = Hex(fmt.Sprintf("%s%d", prefix, i), v)
	}
	return fields
}
