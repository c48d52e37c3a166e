package engine

import (
	"github.com/speq1/speq-backend/internal/types"
)

// AggregatePL sums performance metrics over the client's resolved groups.
//
// Per group: zero name-matched rows appends the group to FailedGroups and
// moves on. Matched rows are then date-filtered — rows with unparseable
// entry dates or dates before the client's join day are dropped without
// counting. Surviving rows contribute both P&L cells (zero when
// malformed) and increment TotalCalls.
//
// FailedGroups deliberately signals "group missing from ledger", not "no
// activity since joining": a group whose rows all predate the join date is
// not failed.
func AggregatePL(client types.Client, resolvedGroups []types.Group, rows []types.LedgerRow) types.PLTotals {
	joinDay := JoinDay(client.JoiningDate)

	totals := types.PLTotals{FailedGroups: []string{}}

	for _, group := range resolvedGroups {
		matched := MatchRows(group, rows)
		if len(matched) == 0 {
			totals.FailedGroups = append(totals.FailedGroups, group.GroupName)
			continue
		}

		for _, row := range matched {
			entryDate, ok := NormalizeEntryDate(row.EntryDate())
			if !ok || entryDate.Before(joinDay) {
				continue
			}

			totals.PLPercentageTotal += row.PLPercentage()
			totals.PLAbsTotal += row.PLAbs()
			totals.TotalCalls++
		}
	}

	return totals
}
