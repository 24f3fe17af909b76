package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ToNumeric converts the named column to numeric in place. Values that do
// not parse become Missing. It reports whether the column exists.
func (d *Dataset) ToNumeric(name string) bool {
	c, ok := d.Column(name)
	if !ok {
		return false
	}
	if c.Kind == KindNumeric {
		return true
	}
	cells := make([]Cell, len(c.Cells))
	for i, cell := range c.Cells {
		if !cell.Valid || c.Kind == KindTime {
			continue
		}
		if x, ok := ParseNumber(cell.Text); ok {
			cells[i] = NumberCell(x)
		}
	}
	_ = d.SetColumn(&Column{Name: name, Kind: KindNumeric, Cells: cells})
	return true
}

// ToTime converts the named column to timestamps in place. Values that do
// not parse become Missing. It reports whether the column exists.
func (d *Dataset) ToTime(name string) bool {
	c, ok := d.Column(name)
	if !ok {
		return false
	}
	if c.Kind == KindTime {
		return true
	}
	cells := make([]Cell, len(c.Cells))
	for i, cell := range c.Cells {
		if !cell.Valid || c.Kind == KindNumeric {
			continue
		}
		if t, ok := ParseTime(cell.Text); ok {
			cells[i] = TimeCell(t)
		}
	}
	_ = d.SetColumn(&Column{Name: name, Kind: KindTime, Cells: cells})
	return true
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseTime parses common survey export timestamp layouts. Day-first wins
// over month-first for ambiguous slash dates.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses a number written with either '.' or ',' as decimal
// separator, tolerating thousands separators and a trailing percent sign.
func ParseNumber(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	var dec, thou rune
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec, thou = ',', '.'
		} else {
			dec, thou = '.', ','
		}
	case cpos >= 0:
		dec = ','
	default:
		dec = '.'
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else {
		raw = strings.ReplaceAll(raw, string(thou), "")
		raw = strings.ReplaceAll(raw, " ", "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
