package git

import "context"

// EnsureCall records one EnsureLocal invocation observed by MockClient.
type EnsureCall struct {
	URL  string
	Path string
	Mode RefreshMode
}

// MockClient is a test double for Client. It serves canned commit logs
// keyed by repository path and records every call, so tests can drive
// multi-repository flows without real clones.
type MockClient struct {
	Logs       map[string][]string
	EnsureErrs map[string]error
	RangeErrs  map[string]error
	LogErrs    map[string]error

	EnsureCalls []EnsureCall
	LogQueries  []LogQuery
}

// NewMockClient creates a MockClient serving the given per-path logs.
func NewMockClient(logs map[string][]string) *MockClient {
	return &MockClient{Logs: logs}
}

func (m *MockClient) EnsureLocal(_ context.Context, url, path string, mode RefreshMode) error {
	m.EnsureCalls = append(m.EnsureCalls, EnsureCall{URL: url, Path: path, Mode: mode})
	return m.EnsureErrs[path]
}

func (m *MockClient) ValidateRange(_ context.Context, path string, _ LogQuery) error {
	return m.RangeErrs[path]
}

func (m *MockClient) CommitLog(_ context.Context, path string, q LogQuery) ([]string, error) {
	m.LogQueries = append(m.LogQueries, q)
	if err := m.LogErrs[path]; err != nil {
		return nil, err
	}
	return m.Logs[path], nil
}

// Compile-time interface conformance check.
var _ Client = (*MockClient)(nil)
