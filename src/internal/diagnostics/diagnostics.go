// Package diagnostics collects the non-fatal notices produced while loading and
// resolving input lists. A skipped line or an unresolved host never aborts a run;
// it is logged and appended to a Record instead.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/bigip-sd/src/internal/errors"
)

// Stage names the pipeline step that produced a diagnostic.
type Stage string

const (
	StageURL     Stage = "url"
	StageSubnet  Stage = "subnet"
	StageResolve Stage = "resolve"
)

// Diagnostic describes one skipped entry.
type Diagnostic struct {
	Stage  Stage
	Source string
	// Line is the 1-based line number in Source, or 0 when not applicable.
	Line  int
	Input string
	Err   error
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s %s:%d %q: %v", d.Stage, d.Source, d.Line, d.Input, d.Err)
	}
	if d.Source != "" {
		return fmt.Sprintf("%s %s %q: %v", d.Stage, d.Source, d.Input, d.Err)
	}
	return fmt.Sprintf("%s %q: %v", d.Stage, d.Input, d.Err)
}

// Record is an ordered collection of diagnostics.
type Record struct {
	Entries []Diagnostic
}

// Add appends d to the record.
func (r *Record) Add(d Diagnostic) {
	r.Entries = append(r.Entries, d)
}

// Merge appends every entry of other, keeping order.
func (r *Record) Merge(other Record) {
	r.Entries = append(r.Entries, other.Entries...)
}

func (r *Record) Len() int {
	return len(r.Entries)
}

// Count returns the number of entries produced by stage.
func (r *Record) Count(stage Stage) int {
	n := 0
	for _, d := range r.Entries {
		if d.Stage == stage {
			n++
		}
	}
	return n
}

type tomlEntry struct {
	Stage  string `toml:"stage"`
	Source string `toml:"source,omitempty"`
	Line   int    `toml:"line,omitempty"`
	Input  string `toml:"input"`
	Code   string `toml:"code,omitempty"`
	Error  string `toml:"error"`
}

type tomlRecord struct {
	Count       int         `toml:"count"`
	Diagnostics []tomlEntry `toml:"diagnostic"`
}

// WriteTOML encodes the record as a TOML document with one [[diagnostic]] table per entry.
func (r *Record) WriteTOML(w io.Writer) error {
	doc := tomlRecord{
		Count:       len(r.Entries),
		Diagnostics: make([]tomlEntry, 0, len(r.Entries)),
	}
	for _, d := range r.Entries {
		entry := tomlEntry{
			Stage:  string(d.Stage),
			Source: d.Source,
			Line:   d.Line,
			Input:  d.Input,
			Code:   string(errors.CodeOf(d.Err)),
		}
		if d.Err != nil {
			entry.Error = d.Err.Error()
		}
		doc.Diagnostics = append(doc.Diagnostics, entry)
	}

	return toml.NewEncoder(w).Encode(doc)
}
