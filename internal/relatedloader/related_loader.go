// Package relatedloader resolves related-field columns: output columns whose
// values live in a different physical table, keyed by a link field on the
// primary record. Lookups are batched through a dataloader so repeated link
// values cost nothing and each secondary query stays within the remote
// service's practical request-size limits.
package relatedloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader"

	"github.com/SEEDtk/p3-core/internal/domain"
)

// BatchSize caps the number of distinct link values per secondary query.
const BatchSize = 200

// Loader batches lookups against one related-field target table.
type Loader struct {
	spec   domain.RelatedSpec
	loader *dataloader.Loader
}

// New creates a loader for the given related-field spec. Link values queued
// against it are fetched in batches of at most BatchSize via a single
// in-clause query per batch.
func New(transport domain.Transport, spec domain.RelatedSpec) *Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		links := keys.Keys()

		records, err := transport.Query(ctx, spec.TargetTable,
			[]string{spec.TargetKey, spec.TargetField},
			[]domain.FilterClause{domain.In(spec.TargetKey, links)})
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		// Merge the batch into a link-value -> data-values map, then hand
		// each key its slice in key order.
		found := make(map[string][]string)
		for _, rec := range records {
			link := rec.Field(spec.TargetKey)
			if link == "" {
				continue
			}
			found[link] = append(found[link], rec.List(spec.TargetField)...)
		}

		results := make([]*dataloader.Result, len(keys))
		for i, link := range links {
			results[i] = &dataloader.Result{Data: found[link]}
		}
		return results
	}

	return &Loader{
		spec: spec,
		loader: dataloader.NewBatchedLoader(batchFn,
			dataloader.WithBatchCapacity(BatchSize),
			dataloader.WithWait(5*time.Millisecond),
			dataloader.WithClearCacheOnBatch()),
	}
}

// Resolve scans the records for distinct non-empty link-field values in
// first-seen order and returns the link-value -> data-values map for them.
// Every record sharing a link value is served by the same map entry; no
// secondary query is issued more than once per batch of link values.
func (l *Loader) Resolve(ctx context.Context, records []domain.ResultRecord) (map[string][]string, error) {
	var links []string
	seen := make(map[string]bool)
	for _, rec := range records {
		link := rec.Field(l.spec.LinkField)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		links = append(links, link)
	}
	if len(links) == 0 {
		return map[string][]string{}, nil
	}

	thunk := l.loader.LoadMany(ctx, dataloader.NewKeysFromStrings(links))
	values, errs := thunk()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	linkMap := make(map[string][]string, len(links))
	for i, link := range links {
		if vals, ok := values[i].([]string); ok && len(vals) > 0 {
			linkMap[link] = vals
		}
	}
	return linkMap, nil
}
