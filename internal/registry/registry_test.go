package registry

import (
	"testing"

	"github.com/SEEDtk/p3-core/internal/domain"
)

func TestLookup_KnownObject(t *testing.T) {
	obj, err := Lookup("genome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Table != "genome" || obj.IDField != "genome_id" {
		t.Fatalf("unexpected schema %+v", obj)
	}
}

func TestLookup_UnknownObject(t *testing.T) {
	_, err := Lookup("plasmid")
	if !domain.IsSpecError(err) {
		t.Fatalf("expected a specification error, got %v", err)
	}
}

func TestAllSchemasValidate(t *testing.T) {
	for _, name := range Names() {
		obj, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if err := obj.Validate(); err != nil {
			t.Fatalf("schema %s failed validation: %v", name, err)
		}
	}
}

func TestValidate_RejectsUnknownDerivedFunction(t *testing.T) {
	obj := domain.ObjectSchema{
		Name:    "bogus",
		Table:   "bogus",
		IDField: "id",
		Derived: map[string]domain.DerivedSpec{
			"x": {Func: "reverse", Sources: []string{"y"}},
		},
	}
	if err := obj.Validate(); err == nil {
		t.Fatalf("expected validation failure for unknown function kind")
	}
}

func TestNames_SortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != len(objects) {
		t.Fatalf("expected %d names, got %d", len(objects), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %q", names[i])
		}
	}
}
