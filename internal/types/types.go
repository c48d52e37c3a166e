package types

import "encoding/json"

// RoleUser is the only role that enters aggregation.
const RoleUser = "user"

// Timestamp mirrors the document store's epoch-seconds wrapper.
type Timestamp struct {
	Seconds int64 `json:"_seconds"`
	Nanos   int64 `json:"_nanoseconds"`
}

// UnixMilli returns the wrapped instant in epoch milliseconds.
func (t Timestamp) UnixMilli() int64 {
	return t.Seconds * 1000
}

// Client is one user document. Inputs are snapshotted per run and never
// mutated by the engine.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Role        string    `json:"role"`
	JoiningDate Timestamp `json:"joining_date"`
	Groups      []string  `json:"groups_client_is_part_of"`
}

// Group is a named collection a client can belong to. GroupID is the
// membership key referenced by Client.Groups; GroupName is the join key
// into ledger rows; ID is the store document id that owns the reports
// subcollection.
type Group struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupID"`
	GroupName string `json:"groupName"`
}

// ReportDocument is one activity report under a group. Timestamp is nil
// when the document carries no timestamp field.
type ReportDocument struct {
	ID        string
	Timestamp *Timestamp
}

// PLTotals is the ledger-path output for one client.
type PLTotals struct {
	PLPercentageTotal float64
	PLAbsTotal        float64
	TotalCalls        int
	FailedGroups      []string
}

// ClientSummary is a Client plus its derived performance totals.
// Clients that never enter aggregation (wrong role, no membership list)
// carry Aggregated=false and marshal as the bare client record, so the
// response mixes summaries and untouched clients the way callers expect.
type ClientSummary struct {
	Client
	Aggregated        bool
	TotalPLPercentage float64
	TotalPLAbs        float64
	TotalCalls        int
	TotalReports      int
	FailedGroups      []string
}

func (s ClientSummary) MarshalJSON() ([]byte, error) {
	if !s.Aggregated {
		return json.Marshal(s.Client)
	}
	type aggregated struct {
		Client
		TotalPLPercentage float64  `json:"totalPLPercentage"`
		TotalPLAbs        float64  `json:"totalPLAbs"`
		TotalCalls        int      `json:"totalCalls"`
		TotalReports      int      `json:"totalReports"`
		FailedGroups      []string `json:"failedGroups"`
	}
	out := aggregated{
		Client:            s.Client,
		TotalPLPercentage: s.TotalPLPercentage,
		TotalPLAbs:        s.TotalPLAbs,
		TotalCalls:        s.TotalCalls,
		TotalReports:      s.TotalReports,
		FailedGroups:      s.FailedGroups,
	}
	if out.FailedGroups == nil {
		out.FailedGroups = []string{}
	}
	return json.Marshal(out)
}

// AggregateResponse is the payload of one full aggregation run.
type AggregateResponse struct {
	Users  []ClientSummary `json:"users"`
	Groups []Group         `json:"groups"`
}
