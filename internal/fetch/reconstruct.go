package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/SEEDtk/p3-core/internal/domain"
	"github.com/SEEDtk/p3-core/internal/relatedloader"
)

// ecPattern recognizes EC numbers embedded in functional assignment text,
// e.g. "(EC 2.7.7.7)". Partial assignments use "-" or "n" digits.
var ecPattern = regexp.MustCompile(`\(\s*EC[ :]+([0-9]+\.[0-9\-]+\.[0-9\-]+\.[0-9n\-]+)\s*\)`)

// processEntries turns raw query records into finished output rows. In count
// mode (no columns requested) it emits a single row holding the input-row
// prefix plus the number of records with a non-empty ID. In data mode it
// applies each column's rule (related lookup, derived function, or raw
// passthrough), rejects records whose every column came up empty, and
// prefixes each surviving row with the key-field value (when keyField is
// set) and the caller's input row (when present). Related-value maps are
// resolved once for the whole record batch before the per-record loop.
func (e *Engine) processEntries(ctx context.Context, req Request, records []domain.ResultRecord, keyField string, inputRow []string) ([]domain.OutputRow, error) {
	idField := e.view.ToInternal(req.Object.IDField)

	if req.Columns == nil {
		count := 0
		for _, rec := range records {
			if idField == "" || rec.Field(idField) != "" {
				count++
			}
		}
		row := append(append(domain.OutputRow{}, inputRow...), strconv.Itoa(count))
		return []domain.OutputRow{row}, nil
	}

	linkMaps := make(map[string]map[string][]string)
	for _, col := range req.Columns {
		spec, ok := req.Object.RelatedFor(col)
		if !ok {
			continue
		}
		linkMap, err := relatedloader.New(e.transport, spec).Resolve(ctx, records)
		if err != nil {
			return nil, err
		}
		linkMaps[col] = linkMap
	}

	var out []domain.OutputRow
	for _, rec := range records {
		if idField != "" && rec.Field(idField) == "" {
			continue
		}

		cells := make([]string, 0, len(req.Columns))
		nonEmpty := false
		for _, col := range req.Columns {
			var cell string
			if spec, ok := req.Object.RelatedFor(col); ok {
				cell = e.relatedValue(spec, linkMaps[col], rec)
			} else if spec, ok := req.Object.DerivedFor(col); ok {
				cell = e.applyDerived(spec, rec)
			} else {
				cell = rec.Field(e.view.ToInternal(col))
			}
			if cell != "" {
				nonEmpty = true
			}
			cells = append(cells, cell)
		}
		if !nonEmpty {
			continue
		}

		row := domain.OutputRow{}
		if keyField != "" {
			row = append(row, rec.Field(keyField))
		}
		row = append(row, inputRow...)
		row = append(row, cells...)
		out = append(out, row)
	}
	return out, nil
}

// relatedValue looks up the record's link-field value in the column's
// precomputed link map. Missing lookups yield the empty string; multi-valued
// related columns join their members with the list delimiter.
func (e *Engine) relatedValue(spec domain.RelatedSpec, linkMap map[string][]string, rec domain.ResultRecord) string {
	link := rec.Field(spec.LinkField)
	if link == "" {
		return ""
	}
	values := linkMap[link]
	if len(values) == 0 {
		return ""
	}
	if spec.Multi {
		return strings.Join(values, domain.ListDelimiter)
	}
	return values[0]
}

// applyDerived evaluates a derived column's function over its declared source
// fields, substituting the empty string for any missing source value.
func (e *Engine) applyDerived(spec domain.DerivedSpec, rec domain.ResultRecord) string {
	first := e.view.ToInternal(spec.Sources[0])
	switch spec.Func {
	case domain.FuncIdentity:
		return rec.Field(first)
	case domain.FuncConcat:
		return strings.Join(rec.List(first), ";")
	case domain.FuncDigest:
		seq := rec.Field(first)
		if seq == "" {
			return ""
		}
		sum := md5.Sum([]byte(strings.ToUpper(seq)))
		return hex.EncodeToString(sum[:])
	case domain.FuncCodes:
		seen := make(map[string]bool)
		var codes []string
		for _, src := range spec.Sources {
			text := rec.Field(e.view.ToInternal(src))
			for _, match := range ecPattern.FindAllStringSubmatch(text, -1) {
				if !seen[match[1]] {
					seen[match[1]] = true
					codes = append(codes, match[1])
				}
			}
		}
		sort.Strings(codes)
		return strings.Join(codes, domain.ListDelimiter)
	default:
		// Unknown kinds are rejected at registry load; nothing to do here.
		return ""
	}
}
