package domain

import "context"

// Transport issues queries against the remote data service. Implementations
// must report transport and server failures as errors; every returned
// ResultRecord maps physical field names to values, with multi-valued fields
// decoded as lists.
type Transport interface {
	// Query fetches the records of table matching every filter clause,
	// returning only the named select fields.
	Query(ctx context.Context, table string, selectFields []string, filters []FilterClause) ([]ResultRecord, error)

	// SetLimit caps the number of records returned by subsequent queries.
	SetLimit(n int)

	// ClearLimit removes any configured result-size cap.
	ClearLimit()
}

// Translator converts between caller-facing field names and the physical
// names used by the remote service. Filters and selects always translate to
// internal form; headers stay external.
type Translator interface {
	ToInternal(name string) string
	ToInternalList(names []string) []string
	ToExternalList(names []string) []string
}
