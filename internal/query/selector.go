package query

import (
	"sort"
	"strings"

	"github.com/SEEDtk/p3-core/internal/domain"
)

// SelectOptions modifies column selection. Count requests a record count
// instead of field retrieval; IDOnly restricts the default column set to the
// object's key field and forces it into explicit wishlists; Defaults replaces
// the object's own default column list; Limit, when positive, caps the result
// size at the transport.
type SelectOptions struct {
	Count    bool
	IDOnly   bool
	Defaults []string
	Limit    int
}

// Selection is the outcome of column resolution for one request: the internal
// physical fields to ask the transport for (nil in count mode), the logical
// output columns to reconstruct, and the external header labels.
type Selection struct {
	Fields  []string
	Columns []string
	Headers []string
}

// Select computes the minimal physical field list and the output headers for
// a request against obj. An explicit wishlist may carry comma-joined tokens;
// count mode and an explicit wishlist are mutually exclusive. Headers prefix
// every column with the object name. As a side effect the configured result
// cap is propagated to (or cleared from) the transport.
func Select(obj domain.ObjectSchema, wishlist []string, opts SelectOptions, tr domain.Translator, t domain.Transport) (Selection, error) {
	if opts.Limit > 0 {
		t.SetLimit(opts.Limit)
	} else {
		t.ClearLimit()
	}

	if opts.Count {
		if len(wishlist) > 0 {
			return Selection{}, domain.Specf("cannot specify both a field list and a count")
		}
		return Selection{Headers: []string{"count"}}, nil
	}

	var cols []string
	if len(wishlist) == 0 {
		switch {
		case opts.IDOnly:
			cols = []string{obj.IDField}
		case len(opts.Defaults) > 0:
			cols = append(cols, opts.Defaults...)
		default:
			cols = obj.DefaultFields()
		}
	} else {
		for _, token := range wishlist {
			cols = append(cols, strings.Split(token, ",")...)
		}
		if opts.IDOnly && !contains(cols, obj.IDField) {
			cols = append([]string{obj.IDField}, cols...)
		}
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = obj.Name + "." + col
	}

	return Selection{
		Fields:  tr.ToInternalList(ResolveSelectList(obj, cols)),
		Columns: cols,
		Headers: headers,
	}, nil
}

// ResolveSelectList computes the minimal physical-field set needed to produce
// the requested logical columns: related columns contribute only their link
// field, derived columns contribute their declared source fields, and plain
// columns contribute themselves. The object's ID field is always included
// because empty-record rejection depends on it. The result is sorted and
// deduplicated.
func ResolveSelectList(obj domain.ObjectSchema, cols []string) []string {
	need := make(map[string]bool)
	for _, col := range cols {
		if rel, ok := obj.RelatedFor(col); ok {
			need[rel.LinkField] = true
		} else if der, ok := obj.DerivedFor(col); ok {
			for _, src := range der.Sources {
				need[src] = true
			}
		} else {
			need[col] = true
		}
	}
	need[obj.IDField] = true

	fields := make([]string, 0, len(need))
	for f := range need {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
