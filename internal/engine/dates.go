package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/speq1/speq-backend/internal/types"
)

// Sheet entry dates arrive in whatever shape the upstream sheet exports:
// most rows carry "DD/MM/YYYY" text, some carry ISO strings, a few carry
// raw epoch-millisecond numbers. Day-first order must be preserved; it is
// not what generic date parsing assumes.

var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeEntryDate converts a raw entry-date cell into a comparable
// instant. The second return is false when the cell cannot be parsed;
// callers skip such rows instead of propagating an error.
func NormalizeEntryDate(c types.Cell) (time.Time, bool) {
	switch c.Kind {
	case types.CellText:
		if d, ok := parseDayFirst(c.Text); ok {
			return d, true
		}
		return parseGeneric(c.Text)
	case types.CellNumber:
		return time.UnixMilli(int64(c.Number)).UTC(), true
	default:
		return time.Time{}, false
	}
}

// parseDayFirst parses "DD/MM/YYYY" at UTC midnight. Out-of-range day or
// month components roll over arithmetically rather than failing, matching
// the calendar normalization the upstream dates went through.
func parseDayFirst(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func parseGeneric(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), true
		}
	}
	return time.Time{}, false
}

// JoinDay converts an epoch-seconds join date to UTC midnight of that
// day. Entry dates are normalized to UTC midnight too, so the two sides
// of the ledger-path comparison share one canonical timezone.
func JoinDay(ts types.Timestamp) time.Time {
	return time.UnixMilli(ts.UnixMilli()).UTC().Truncate(24 * time.Hour)
}
