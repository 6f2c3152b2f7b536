package relatedloader

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/SEEDtk/p3-core/internal/domain"
)

type mockTransport struct {
	mu      sync.Mutex
	calls   []string
	records []domain.ResultRecord
}

func (m *mockTransport) Query(ctx context.Context, table string, fields []string, filters []domain.FilterClause) ([]domain.ResultRecord, error) {
	m.mu.Lock()
	m.calls = append(m.calls, filters[0].Value)
	m.mu.Unlock()
	return m.records, nil
}

func (m *mockTransport) SetLimit(n int) {}

func (m *mockTransport) ClearLimit() {}

var seqSpec = domain.RelatedSpec{
	LinkField:   "aa_sequence_md5",
	TargetTable: "feature_sequence",
	TargetKey:   "md5",
	TargetField: "sequence",
}

func TestResolve_DeduplicatesLinkValues(t *testing.T) {
	transport := &mockTransport{
		records: []domain.ResultRecord{
			{"md5": "A", "sequence": "MKT"},
			{"md5": "B", "sequence": "MRA"},
			{"md5": "C", "sequence": "MLL"},
		},
	}
	loader := New(transport, seqSpec)
	records := []domain.ResultRecord{
		{"aa_sequence_md5": "A"},
		{"aa_sequence_md5": "A"},
		{"aa_sequence_md5": "B"},
		{"aa_sequence_md5": ""},
		{"aa_sequence_md5": "C"},
	}

	linkMap, err := loader.Resolve(context.Background(), records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(transport.calls) != 1 {
		t.Fatalf("expected one secondary query, got %d", len(transport.calls))
	}
	if transport.calls[0] != "(A,B,C)" {
		t.Fatalf("expected distinct keys in first-seen order, got %q", transport.calls[0])
	}
	if len(linkMap) != 3 {
		t.Fatalf("expected 3 map entries, got %d", len(linkMap))
	}
	if got := strings.Join(linkMap["A"], ","); got != "MKT" {
		t.Fatalf("expected MKT for link A, got %q", got)
	}
}

func TestResolve_NoLinkValues(t *testing.T) {
	transport := &mockTransport{}
	loader := New(transport, seqSpec)

	linkMap, err := loader.Resolve(context.Background(), []domain.ResultRecord{{"other": "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(linkMap) != 0 {
		t.Fatalf("expected empty map, got %v", linkMap)
	}
	if len(transport.calls) != 0 {
		t.Fatalf("expected no secondary queries, got %d", len(transport.calls))
	}
}

func TestResolve_MergesMultiValuedTargets(t *testing.T) {
	transport := &mockTransport{
		records: []domain.ResultRecord{
			{"md5": "A", "sequence": "one"},
			{"md5": "A", "sequence": "two"},
		},
	}
	loader := New(transport, seqSpec)

	linkMap, err := loader.Resolve(context.Background(), []domain.ResultRecord{{"aa_sequence_md5": "A"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(linkMap["A"], ","); got != "one,two" {
		t.Fatalf("expected merged values, got %q", got)
	}
}
