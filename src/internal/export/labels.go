package export

import (
	"maps"
	"sort"
)

// Labels is an immutable label set. The zero value is empty.
type Labels struct {
	m map[string]string
}

// NewLabels copies m into a new label set.
func NewLabels(m map[string]string) Labels {
	return Labels{m: maps.Clone(m)}
}

// Map returns a copy of the labels, never nil.
func (l Labels) Map() map[string]string {
	out := make(map[string]string, len(l.m))
	for k, v := range l.m {
		out[k] = v
	}
	return out
}

func (l Labels) Get(name string) (string, bool) {
	v, ok := l.m[name]
	return v, ok
}

func (l Labels) Len() int {
	return len(l.m)
}

// Names returns the label names in sorted order.
func (l Labels) Names() []string {
	names := make([]string, 0, len(l.m))
	for k := range l.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
