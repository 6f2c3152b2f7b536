package tabio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/SEEDtk/p3-core/internal/domain"
)

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	if err := w.WriteHeaders([]string{"genome.genome_id", "genome.genome_name"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRow(domain.OutputRow{"83333.1", "E. coli K-12"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "genome.genome_id\tgenome.genome_name\n83333.1\tE. coli K-12\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewXLSXWriter(path)

	if err := w.WriteHeaders([]string{"field", "value"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRow(domain.OutputRow{"genome_id", "83333.1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(f.GetSheetName(0), "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "83333.1" {
		t.Fatalf("expected cell value 83333.1, got %q", got)
	}
}
