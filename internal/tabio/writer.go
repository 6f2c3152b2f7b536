package tabio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SEEDtk/p3-core/internal/domain"
)

// RowWriter receives finished output rows. Close flushes any buffered state.
type RowWriter interface {
	WriteHeaders(headers []string) error
	WriteRow(row domain.OutputRow) error
	Close() error
}

// TabWriter writes rows as tab-delimited lines.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter wraps w in a tab-delimited row writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

func (t *TabWriter) WriteHeaders(headers []string) error {
	return t.WriteRow(domain.OutputRow(headers))
}

func (t *TabWriter) WriteRow(row domain.OutputRow) error {
	if _, err := t.w.WriteString(strings.Join(row, "\t")); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	if err := t.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	return nil
}

func (t *TabWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// XLSXWriter collects rows into a single-sheet xlsx workbook saved on Close.
type XLSXWriter struct {
	file  *excelize.File
	sheet string
	path  string
	next  int
}

// NewXLSXWriter creates a workbook writer that saves to path.
func NewXLSXWriter(path string) *XLSXWriter {
	file := excelize.NewFile()
	return &XLSXWriter{
		file:  file,
		sheet: file.GetSheetName(0),
		path:  path,
		next:  1,
	}
}

func (x *XLSXWriter) WriteHeaders(headers []string) error {
	return x.WriteRow(domain.OutputRow(headers))
}

func (x *XLSXWriter) WriteRow(row domain.OutputRow) error {
	cell, err := excelize.CoordinatesToCellName(1, x.next)
	if err != nil {
		return fmt.Errorf("locate worksheet row %d: %w", x.next, err)
	}
	cells := make([]any, len(row))
	for i, value := range row {
		cells[i] = value
	}
	if err := x.file.SetSheetRow(x.sheet, cell, &cells); err != nil {
		return fmt.Errorf("write worksheet row %d: %w", x.next, err)
	}
	x.next++
	return nil
}

func (x *XLSXWriter) Close() error {
	defer x.file.Close()
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", x.path, err)
	}
	return nil
}
