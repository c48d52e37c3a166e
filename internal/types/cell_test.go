package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
		ok   bool
	}{
		{"number", NumberCell(2.5), 2.5, true},
		{"plain text", TextCell("100"), 100, true},
		{"decimal text", TextCell("5.2"), 5.2, true},
		{"negative", TextCell("-3.1"), -3.1, true},
		{"percent suffix", TextCell("2.5%"), 2.5, true},
		{"exponent", TextCell("2.5e2"), 250, true},
		{"padded", TextCell("  7.5  "), 7.5, true},
		{"not a number", TextCell("n/a"), 0, false},
		{"empty", TextCell(""), 0, false},
		{"missing", MissingCell(), 0, false},
		{"bare sign", TextCell("-"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedgerRowAccessors(t *testing.T) {
	row := make(LedgerRow, 15)
	for i := range row {
		row[i] = MissingCell()
	}
	row[1] = TextCell("G1")
	row[2] = TextCell("15/01/2024")
	row[13] = TextCell("2.5")
	row[14] = NumberCell(100)

	assert.Equal(t, "G1", row.GroupName())
	assert.Equal(t, CellText, row.EntryDate().Kind)
	assert.Equal(t, 2.5, row.PLPercentage())
	assert.Equal(t, 100.0, row.PLAbs())
}

func TestLedgerRowShortRow(t *testing.T) {
	// Rows shorter than the P&L columns read as zero, not panic.
	row := LedgerRow{MissingCell(), TextCell("G1"), TextCell("15/01/2024")}

	assert.Equal(t, "G1", row.GroupName())
	assert.Equal(t, 0.0, row.PLPercentage())
	assert.Equal(t, 0.0, row.PLAbs())
}

func TestLedgerRowNonTextGroupName(t *testing.T) {
	row := LedgerRow{MissingCell(), NumberCell(42)}
	assert.Equal(t, "", row.GroupName())
}
