package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SEEDtk/p3-core/internal/domain"
)

func TestEncodeQuery_ClauseForms(t *testing.T) {
	filters := []domain.FilterClause{
		domain.Eq("genome_id", "83333.1"),
		{Op: domain.OpGe, Field: "length", Value: "1000"},
		domain.In("host", []string{"Human", "Mouse"}),
		domain.Keyword("polymerase"),
	}
	got := EncodeQuery([]string{"genome_id", "genome_name"}, filters, 500)
	want := "eq(genome_id,83333.1)&ge(length,1000)&in(host,(Human,Mouse))&keyword(polymerase)&select(genome_id,genome_name)&limit(500)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEncodeQuery_EscapesValues(t *testing.T) {
	got := EncodeQuery(nil, []domain.FilterClause{domain.Eq("name", "a b&c")}, 0)
	if got != "eq(name,a+b%26c)" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestEncodeQuery_NoSelectInCountMode(t *testing.T) {
	got := EncodeQuery(nil, nil, 100)
	if got != "limit(100)" {
		t.Fatalf("expected limit only, got %q", got)
	}
}

func TestClient_QueryDecodesRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Errorf("expected a request ID header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"genome_id":"83333.1","taxon_lineage":["a","b"]}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := client.Query(context.Background(), "genome", []string{"genome_id"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Field("genome_id") != "83333.1" {
		t.Fatalf("unexpected record %v", records[0])
	}
	if got := records[0].Field("taxon_lineage"); got != "a"+domain.ListDelimiter+"b" {
		t.Fatalf("expected list rendering, got %q", got)
	}
}

func TestClient_QueryReportsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = client.Query(context.Background(), "genome", nil, nil)
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if te.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", te.Status)
	}
}

func TestClient_SchemaCachesResponses(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"schema":{"fields":[{"name":"genome_id","type":"string","multiValued":false},{"name":"taxon_lineage","type":"string","multiValued":true}]}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		fields, err := client.Schema(context.Background(), "genome")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fields) != 2 || fields[0].Name != "genome_id" || !fields[1].Multi {
			t.Fatalf("unexpected schema %v", fields)
		}
	}
	if hits != 1 {
		t.Fatalf("expected one upstream schema fetch, got %d", hits)
	}
}

func TestClient_SchemaReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such core", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = client.Schema(context.Background(), "nope")
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
