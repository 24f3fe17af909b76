package dataset

import "github.com/fayssalzakaria/data-analysis-on-an-HTML-file/internal/parser"

// FromRecords builds one row per record and one text column per distinct
// question key, in first-seen order. Keys absent from a record are Missing
// in that row. No type inference happens here.
func FromRecords(records []parser.Record) *Dataset {
	d := New(len(records))
	var order []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	for _, name := range order {
		cells := make([]Cell, len(records))
		for i := range records {
			if v, ok := records[i].Get(name); ok {
				cells[i] = TextCell(v)
			}
		}
		// lengths always match here
		_ = d.SetColumn(&Column{Name: name, Kind: KindText, Cells: cells})
	}
	return d
}
