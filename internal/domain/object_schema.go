package domain

import (
	"fmt"
	"strings"
)

// DerivedFunc identifies the pure function used to compute a derived field
// from its source fields. The set is closed; schemas carrying any other value
// are rejected when the registry is loaded.
type DerivedFunc string

const (
	// FuncIdentity passes the single source value through unchanged.
	FuncIdentity DerivedFunc = "identity"
	// FuncConcat joins a multi-valued source with semicolons.
	FuncConcat DerivedFunc = "concat"
	// FuncDigest produces the MD5 hex digest of the upper-cased source value.
	FuncDigest DerivedFunc = "digest"
	// FuncCodes extracts the distinct EC numbers found in the source text,
	// sorted. Always multi-valued.
	FuncCodes DerivedFunc = "codes"
)

// DerivedSpec describes an output column computed from one or more physical
// fields of the same record, without a secondary query.
type DerivedSpec struct {
	Func    DerivedFunc
	Sources []string
}

// RelatedSpec describes an output column resolved by a join against another
// physical table: the record's LinkField value is looked up in
// TargetTable.TargetKey and the matching TargetField value is returned.
type RelatedSpec struct {
	LinkField   string
	TargetTable string
	TargetKey   string
	TargetField string
	// Multi marks related columns whose target field carries more than one
	// value per link key.
	Multi bool
}

// ObjectSchema maps a user-facing logical object name to its physical table
// and describes the object's key field, default output columns, and any
// derived or related output columns. Instances are built once by the registry
// and never mutated afterwards.
type ObjectSchema struct {
	Name     string
	Table    string
	IDField  string
	Defaults []string
	Derived  map[string]DerivedSpec
	Related  map[string]RelatedSpec
}

// DefaultFields returns a copy of the object's default output column list.
func (o ObjectSchema) DefaultFields() []string {
	out := make([]string, len(o.Defaults))
	copy(out, o.Defaults)
	return out
}

// DerivedFor returns the derived-field spec for the named column.
func (o ObjectSchema) DerivedFor(col string) (DerivedSpec, bool) {
	spec, ok := o.Derived[col]
	return spec, ok
}

// RelatedFor returns the related-field spec for the named column.
func (o ObjectSchema) RelatedFor(col string) (RelatedSpec, bool) {
	spec, ok := o.Related[col]
	return spec, ok
}

// Validate checks the schema's internal consistency: a physical table and key
// field must be present, derived specs must use a known function kind and name
// at least one source field, and related specs must name a link field and a
// complete target. Unknown function kinds are caught here rather than at
// evaluation time.
func (o ObjectSchema) Validate() error {
	if strings.TrimSpace(o.Name) == "" || strings.TrimSpace(o.Table) == "" {
		return fmt.Errorf("object schema missing name or table: %q -> %q", o.Name, o.Table)
	}
	if strings.TrimSpace(o.IDField) == "" {
		return fmt.Errorf("object %s: missing ID field", o.Name)
	}
	for col, spec := range o.Derived {
		switch spec.Func {
		case FuncIdentity, FuncConcat, FuncDigest, FuncCodes:
		default:
			return fmt.Errorf("object %s: derived field %s uses unknown function %q", o.Name, col, spec.Func)
		}
		if len(spec.Sources) == 0 {
			return fmt.Errorf("object %s: derived field %s has no source fields", o.Name, col)
		}
		for _, src := range spec.Sources {
			if strings.TrimSpace(src) == "" {
				return fmt.Errorf("object %s: derived field %s has an empty source field", o.Name, col)
			}
		}
	}
	for col, spec := range o.Related {
		if spec.LinkField == "" || spec.TargetTable == "" || spec.TargetKey == "" || spec.TargetField == "" {
			return fmt.Errorf("object %s: related field %s is incomplete", o.Name, col)
		}
	}
	return nil
}

// DerivedMulti reports whether the named derived column yields a list value.
func (o ObjectSchema) DerivedMulti(col string) bool {
	spec, ok := o.Derived[col]
	return ok && spec.Func == FuncCodes
}
