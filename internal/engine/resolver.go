package engine

import "github.com/speq1/speq-backend/internal/types"

// ResolveGroups filters allGroups down to the ones the client is a member
// of. Output order follows allGroups, not the client's membership list.
func ResolveGroups(client types.Client, allGroups []types.Group) []types.Group {
	member := make(map[string]bool, len(client.Groups))
	for _, id := range client.Groups {
		member[id] = true
	}

	var resolved []types.Group
	for _, g := range allGroups {
		if member[g.GroupID] {
			resolved = append(resolved, g)
		}
	}
	return resolved
}

// MatchRows selects ledger rows whose group-name cell equals the group's
// display name. The match is exact: case-sensitive and untrimmed, because
// that is the contract the sheet data is maintained under. An empty result
// marks the group failed for the client regardless of what date filtering
// would later drop.
func MatchRows(group types.Group, rows []types.LedgerRow) []types.LedgerRow {
	var matched []types.LedgerRow
	for _, row := range rows {
		if row.GroupName() == group.GroupName {
			matched = append(matched, row)
		}
	}
	return matched
}
