package docstore

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/speq1/speq-backend/internal/api"
	"github.com/speq1/speq-backend/internal/interfaces"
	"github.com/speq1/speq-backend/internal/types"
)

const defaultBaseURL = "https://firestore.googleapis.com"

// Params configures the Firestore-backed document store.
type Params struct {
	ProjectID string
	APIKey    string
	BaseURL   string // override for tests; defaults to the public endpoint
	Timeout   time.Duration
}

// Store reads clients, groups, and per-group report collections from the
// Firestore REST API. All reads are snapshot-style listings; the store
// never writes.
type Store struct {
	api      *api.Client
	basePath string
}

var _ interfaces.DocumentStore = (*Store)(nil)

func New(p Params) *Store {
	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := p.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	opts := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
		api.WithLogging(true),
	}
	if p.APIKey != "" {
		opts = append(opts, api.WithQueryParam("key", p.APIKey))
	}

	return &Store{
		api:      api.NewClient(opts...),
		basePath: "/v1/projects/" + p.ProjectID + "/databases/(default)/documents/",
	}
}

func (s *Store) ListClients(ctx context.Context) ([]types.Client, error) {
	docs, err := s.listCollection(ctx, "users")
	if err != nil {
		return nil, err
	}

	clients := make([]types.Client, 0, len(docs))
	for _, doc := range docs {
		clients = append(clients, decodeClient(doc))
	}
	return clients, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]types.Group, error) {
	docs, err := s.listCollection(ctx, "groups")
	if err != nil {
		return nil, err
	}

	groups := make([]types.Group, 0, len(docs))
	for _, doc := range docs {
		groups = append(groups, types.Group{
			ID:        doc.id(),
			GroupID:   doc.Fields.stringField("groupID"),
			GroupName: doc.Fields.stringField("groupName"),
		})
	}
	return groups, nil
}

func (s *Store) ListReports(ctx context.Context, groupDocID string) ([]types.ReportDocument, error) {
	docs, err := s.listCollection(ctx, "groups/"+groupDocID+"/reports")
	if err != nil {
		return nil, err
	}

	reports := make([]types.ReportDocument, 0, len(docs))
	for _, doc := range docs {
		reports = append(reports, types.ReportDocument{
			ID:        doc.id(),
			Timestamp: doc.Fields.timestampField("timestamp"),
		})
	}
	return reports, nil
}

// listCollection lists every document of one collection, following page
// tokens until the listing is exhausted.
func (s *Store) listCollection(ctx context.Context, collection string) ([]document, error) {
	var (
		docs      []document
		pageToken string
	)
	for {
		params := url.Values{"pageSize": {"300"}}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		resp, err := s.api.GETWithRetry(ctx, s.basePath+collection, params, nil)
		if err != nil {
			return nil, err
		}

		var page listResponse
		if err := resp.ParseJSON(&page); err != nil {
			return nil, err
		}

		docs = append(docs, page.Documents...)
		if page.NextPageToken == "" {
			return docs, nil
		}
		pageToken = page.NextPageToken
	}
}

func decodeClient(doc document) types.Client {
	c := types.Client{
		ID:   doc.id(),
		Name: doc.Fields.stringField("name"),
		Role: doc.Fields.stringField("role"),
	}
	if ts := doc.Fields.timestampField("joining_date"); ts != nil {
		c.JoiningDate = *ts
	}
	c.Groups = doc.Fields.stringArrayField("groups_client_is_part_of")
	return c
}

type listResponse struct {
	Documents     []document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

type document struct {
	Name   string   `json:"name"`
	Fields fieldMap `json:"fields"`
}

// id returns the last path segment of the document resource name.
func (d document) id() string {
	if i := strings.LastIndex(d.Name, "/"); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

type fieldMap map[string]value

// value is the Firestore REST value envelope: exactly one of the typed
// fields is populated per value.
type value struct {
	StringValue    *string  `json:"stringValue,omitempty"`
	IntegerValue   *string  `json:"integerValue,omitempty"`
	DoubleValue    *float64 `json:"doubleValue,omitempty"`
	BooleanValue   *bool    `json:"booleanValue,omitempty"`
	TimestampValue *string  `json:"timestampValue,omitempty"`
	ArrayValue     *struct {
		Values []value `json:"values"`
	} `json:"arrayValue,omitempty"`
	MapValue *struct {
		Fields fieldMap `json:"fields"`
	} `json:"mapValue,omitempty"`
}

func (f fieldMap) stringField(key string) string {
	if v, ok := f[key]; ok && v.StringValue != nil {
		return *v.StringValue
	}
	return ""
}

// stringArrayField returns nil when the field is absent, which callers
// rely on to distinguish "no membership list" from an empty one.
func (f fieldMap) stringArrayField(key string) []string {
	v, ok := f[key]
	if !ok || v.ArrayValue == nil {
		return nil
	}
	out := make([]string, 0, len(v.ArrayValue.Values))
	for _, item := range v.ArrayValue.Values {
		if item.StringValue != nil {
			out = append(out, *item.StringValue)
		}
	}
	return out
}

// timestampField decodes either a native timestamp value or the exported
// {_seconds, _nanoseconds} map shape older documents carry.
func (f fieldMap) timestampField(key string) *types.Timestamp {
	v, ok := f[key]
	if !ok {
		return nil
	}
	if v.TimestampValue != nil {
		t, err := time.Parse(time.RFC3339, *v.TimestampValue)
		if err != nil {
			return nil
		}
		return &types.Timestamp{Seconds: t.Unix(), Nanos: int64(t.Nanosecond())}
	}
	if v.MapValue != nil {
		secs, ok := v.MapValue.Fields.integerField("_seconds")
		if !ok {
			return nil
		}
		nanos, _ := v.MapValue.Fields.integerField("_nanoseconds")
		return &types.Timestamp{Seconds: secs, Nanos: nanos}
	}
	return nil
}

func (f fieldMap) integerField(key string) (int64, bool) {
	v, ok := f[key]
	if !ok {
		return 0, false
	}
	if v.IntegerValue != nil {
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	if v.DoubleValue != nil {
		return int64(*v.DoubleValue), true
	}
	return 0, false
}
