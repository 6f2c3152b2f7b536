// Package fetch implements the query-execution strategies: unkeyed and
// per-row exact-match queries, a single batched exact-match query over all
// input keys, and chunked keyed fetches. Each strategy builds on the query
// package's select and filter output and hands raw records to the row
// reconstructor.
package fetch

import (
	"context"
	"strings"

	"github.com/SEEDtk/p3-core/internal/domain"
	"github.com/SEEDtk/p3-core/internal/query"
)

// KeyBatchSize caps the number of keys per in-clause query. The remote
// service enforces practical limits on request size, so one large key-driven
// lookup is traded for several bounded ones.
const KeyBatchSize = 200

// Request carries everything one query needs: the target object, the logical
// output columns (nil means count mode), the resolved internal select fields,
// and the filter clauses.
type Request struct {
	Object  domain.ObjectSchema
	Columns []string
	Fields  []string
	Filters []domain.FilterClause
}

// Engine executes requests against a transport, translating field names
// through the configured view.
type Engine struct {
	transport domain.Transport
	view      domain.Translator
}

// New creates an engine bound to a transport and a field-name view.
func New(transport domain.Transport, view domain.Translator) *Engine {
	return &Engine{transport: transport, view: view}
}

// FetchData runs the unkeyed strategy. With no key field it issues one query
// and reconstructs every returned record without a row prefix. With a key
// field it iterates the couplets one at a time, appending an exact-match
// clause on the cleaned key value and prefixing each output row with that
// couplet's input row. Wildcards in key values are rejected. Output preserves
// couplet order.
func (e *Engine) FetchData(ctx context.Context, req Request, couplets []domain.Couplet, keyField string) ([]domain.OutputRow, error) {
	if keyField == "" {
		records, err := e.transport.Query(ctx, req.Object.Table, req.Fields, req.Filters)
		if err != nil {
			return nil, err
		}
		return e.processEntries(ctx, req, records, "", nil)
	}

	internalKey := e.view.ToInternal(keyField)
	var out []domain.OutputRow
	for _, couplet := range couplets {
		key := query.Clean(couplet.Key)
		if strings.Contains(key, "*") {
			return nil, &domain.WildcardKeyError{Key: couplet.Key}
		}
		filters := append(append([]domain.FilterClause{}, req.Filters...), domain.Eq(internalKey, key))
		records, err := e.transport.Query(ctx, req.Object.Table, req.Fields, filters)
		if err != nil {
			return nil, err
		}
		rows, err := e.processEntries(ctx, req, records, "", couplet.Row)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// FetchDataBatch runs the batched exact-match strategy: the couplets' keys
// are cleaned and deduplicated (dropping empties, rejecting wildcards), one
// in-clause query is issued over all of them, and the reconstructed records
// are grouped by key value. Couplets are then replayed in original order,
// emitting one output row per matching record; couplets without a match
// produce nothing.
func (e *Engine) FetchDataBatch(ctx context.Context, req Request, couplets []domain.Couplet, keyField string) ([]domain.OutputRow, error) {
	if req.Columns == nil {
		return nil, domain.Specf("count mode is not supported for batched key retrieval")
	}
	internalKey := e.view.ToInternal(keyField)
	fields := req.Fields
	if !containsField(fields, internalKey) {
		fields = append(append([]string{}, fields...), internalKey)
	}

	var keys []string
	seen := make(map[string]bool)
	for _, couplet := range couplets {
		key := query.Clean(couplet.Key)
		if key == "" {
			continue
		}
		if strings.Contains(key, "*") {
			return nil, &domain.WildcardKeyError{Key: couplet.Key}
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	filters := append(append([]domain.FilterClause{}, req.Filters...), domain.In(internalKey, keys))
	batchReq := req
	batchReq.Fields = fields
	records, err := e.transport.Query(ctx, req.Object.Table, fields, filters)
	if err != nil {
		return nil, err
	}

	// Reconstruct once, tagged with the key-field value, then regroup by key.
	tagged, err := e.processEntries(ctx, batchReq, records, internalKey, nil)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]domain.OutputRow)
	for _, row := range tagged {
		groups[row[0]] = append(groups[row[0]], row[1:])
	}

	var out []domain.OutputRow
	for _, couplet := range couplets {
		key := query.Clean(couplet.Key)
		for _, data := range groups[key] {
			row := append(append(domain.OutputRow{}, couplet.Row...), data...)
			out = append(out, row)
		}
	}
	return out, nil
}

// FetchDataKeyed runs the chunked keyed strategy over a flat key list:
// wildcards are rejected, the keys are partitioned into chunks of at most
// KeyBatchSize, and one in-clause query is issued per chunk. Output preserves
// chunk order and, within a chunk, the transport's record order. Rows carry
// no prefix.
func (e *Engine) FetchDataKeyed(ctx context.Context, req Request, keys []string, keyField string) ([]domain.OutputRow, error) {
	for _, key := range keys {
		if strings.Contains(key, "*") {
			return nil, &domain.WildcardKeyError{Key: key}
		}
	}
	internalKey := e.view.ToInternal(keyField)

	var out []domain.OutputRow
	for _, chunk := range ChunkKeys(keys, KeyBatchSize) {
		filters := append(append([]domain.FilterClause{}, req.Filters...), domain.In(internalKey, chunk))
		records, err := e.transport.Query(ctx, req.Object.Table, req.Fields, filters)
		if err != nil {
			return nil, err
		}
		rows, err := e.processEntries(ctx, req, records, "", nil)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// ChunkKeys partitions keys into consecutive chunks of at most size entries.
// The chunks cover the input exactly, in order, with no omission or overlap.
func ChunkKeys(keys []string, size int) [][]string {
	if size <= 0 || len(keys) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(keys)+size-1)/size)
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}

func containsField(fields []string, want string) bool {
	for _, f := range fields {
		if f == want {
			return true
		}
	}
	return false
}
