// Package tabio reads and writes the tab-delimited streams the command-line
// tools exchange, and can emit results as an xlsx workbook instead.
package tabio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SEEDtk/p3-core/internal/domain"
)

// maxLineSize bounds one input line. Sequence data can run long.
const maxLineSize = 16 * 1024 * 1024

// Reader consumes a tab-delimited input stream with a mandatory header line.
type Reader struct {
	scanner *bufio.Scanner
	Headers []string
}

// NewReader wraps r and reads its header line. An input with no header line
// at all is reported as domain.ErrEmptyInput.
func NewReader(r io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header line: %w", err)
		}
		return nil, domain.ErrEmptyInput
	}
	line := strings.TrimRight(scanner.Text(), "\r\n")
	return &Reader{
		scanner: scanner,
		Headers: strings.Split(line, "\t"),
	}, nil
}

// FindColumn locates the key column named by spec. An empty spec or "0"
// selects the last column. A numeric spec is a 1-based index. Otherwise the
// header is matched exactly, then by the portion after its object prefix
// ("genome.genome_id" matches "genome_id"), then case-insensitively.
func (r *Reader) FindColumn(spec string) (int, error) {
	if spec == "" || spec == "0" {
		return len(r.Headers) - 1, nil
	}
	if idx, err := strconv.Atoi(spec); err == nil {
		if idx < 1 || idx > len(r.Headers) {
			return 0, domain.Specf("column index %d out of range (input has %d columns)", idx, len(r.Headers))
		}
		return idx - 1, nil
	}
	for i, h := range r.Headers {
		if h == spec {
			return i, nil
		}
	}
	for i, h := range r.Headers {
		if _, after, ok := strings.Cut(h, "."); ok && after == spec {
			return i, nil
		}
	}
	for i, h := range r.Headers {
		if strings.EqualFold(h, spec) {
			return i, nil
		}
	}
	return 0, domain.Specf("column %q not found in input headers", spec)
}

// ReadCouplets reads every remaining input row, tagging each with the value
// of the key column so results can be correlated back to it. Short rows yield
// an empty key.
func (r *Reader) ReadCouplets(keyIdx int) ([]domain.Couplet, error) {
	var couplets []domain.Couplet
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		row := strings.Split(line, "\t")
		key := ""
		if keyIdx >= 0 && keyIdx < len(row) {
			key = row[keyIdx]
		}
		couplets = append(couplets, domain.Couplet{Key: key, Row: row})
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input rows: %w", err)
	}
	return couplets, nil
}
