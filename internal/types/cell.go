package types

import (
	"strconv"
	"strings"
)

// CellKind tags the value held by a ledger cell.
type CellKind int

const (
	CellMissing CellKind = iota
	CellText
	CellNumber
)

// Cell is one spreadsheet cell: text, number, or missing. Sheet rows are
// semi-structured, so every read goes through an accessor that copes with
// absent or malformed values.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func TextCell(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }
func MissingCell() Cell         { return Cell{Kind: CellMissing} }

// Float coerces the cell to a float64. Text cells parse leniently: the
// longest leading numeric prefix wins ("5.2%" -> 5.2), matching how the
// upstream sheet's number formats leak suffixes into exported values.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		return parseLeadingFloat(c.Text)
	default:
		return 0, false
	}
}

// parseLeadingFloat parses the longest valid numeric prefix of s.
func parseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '+', r == '-', r == 'e', r == 'E':
			end = i + 1
		default:
			break scan
		}
	}
	for ; end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Ledger column positions. The sheet contract is positional; accessors on
// LedgerRow keep the indices in one place.
const (
	colGroupName    = 1
	colEntryDate    = 2
	colPLPercentage = 13
	colPLAbs        = 14
)

// LedgerRow is one row of the master sheet.
type LedgerRow []Cell

func (r LedgerRow) cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return MissingCell()
	}
	return r[i]
}

// GroupName returns the group-name cell as text. Non-text cells yield "",
// which never matches a real group name.
func (r LedgerRow) GroupName() string {
	c := r.cell(colGroupName)
	if c.Kind != CellText {
		return ""
	}
	return c.Text
}

// EntryDate returns the raw entry-date cell for the date normalizer.
func (r LedgerRow) EntryDate() Cell {
	return r.cell(colEntryDate)
}

// PLPercentage returns the percentage P&L, zero when unparseable.
func (r LedgerRow) PLPercentage() float64 {
	f, _ := r.cell(colPLPercentage).Float()
	return f
}

// PLAbs returns the absolute P&L, zero when unparseable.
func (r LedgerRow) PLAbs() float64 {
	f, _ := r.cell(colPLAbs).Float()
	return f
}
