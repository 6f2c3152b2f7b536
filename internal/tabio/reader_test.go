package tabio

import (
	"errors"
	"strings"
	"testing"

	"github.com/SEEDtk/p3-core/internal/domain"
)

const sample = "genome.genome_id\tgenome.genome_name\n83333.1\tE. coli K-12\n511145.12\tE. coli MG1655\n"

func TestNewReader_EmptyInput(t *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected empty-input error, got %v", err)
	}
}

func TestFindColumn_Variants(t *testing.T) {
	r, err := NewReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		spec string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"1", 0},
		{"2", 1},
		{"genome.genome_id", 0},
		{"genome_name", 1},
		{"GENOME.GENOME_ID", 0},
	}
	for _, tc := range cases {
		got, err := r.FindColumn(tc.spec)
		if err != nil {
			t.Fatalf("spec %q: unexpected error: %v", tc.spec, err)
		}
		if got != tc.want {
			t.Fatalf("spec %q: expected column %d, got %d", tc.spec, tc.want, got)
		}
	}
}

func TestFindColumn_NotFound(t *testing.T) {
	r, err := NewReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.FindColumn("no_such_column"); !domain.IsSpecError(err) {
		t.Fatalf("expected a specification error, got %v", err)
	}
	if _, err := r.FindColumn("7"); !domain.IsSpecError(err) {
		t.Fatalf("expected a specification error for out-of-range index, got %v", err)
	}
}

func TestReadCouplets(t *testing.T) {
	r, err := NewReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	couplets, err := r.ReadCouplets(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(couplets) != 2 {
		t.Fatalf("expected 2 couplets, got %d", len(couplets))
	}
	if couplets[0].Key != "83333.1" || couplets[1].Key != "511145.12" {
		t.Fatalf("unexpected keys: %v", couplets)
	}
	if len(couplets[0].Row) != 2 || couplets[0].Row[1] != "E. coli K-12" {
		t.Fatalf("unexpected row: %v", couplets[0].Row)
	}
}
