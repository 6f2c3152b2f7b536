// Package registry holds the static catalog of logical objects exposed by the
// command-line tools: for each object, its physical table, key field, default
// output columns, and any derived or related output columns. The catalog is
// built once at startup and never mutated.
package registry

import (
	"fmt"
	"sort"

	"github.com/SEEDtk/p3-core/internal/domain"
)

var objects = map[string]domain.ObjectSchema{
	"genome": {
		Name:     "genome",
		Table:    "genome",
		IDField:  "genome_id",
		Defaults: []string{"genome_id", "genome_name", "taxon_id", "genome_status"},
	},
	"feature": {
		Name:     "feature",
		Table:    "genome_feature",
		IDField:  "patric_id",
		Defaults: []string{"patric_id", "feature_type", "location", "product"},
		Derived: map[string]domain.DerivedSpec{
			"ec":       {Func: domain.FuncCodes, Sources: []string{"product"}},
			"function": {Func: domain.FuncIdentity, Sources: []string{"product"}},
		},
		Related: map[string]domain.RelatedSpec{
			"aa_sequence": {
				LinkField:   "aa_sequence_md5",
				TargetTable: "feature_sequence",
				TargetKey:   "md5",
				TargetField: "sequence",
			},
			"na_sequence": {
				LinkField:   "na_sequence_md5",
				TargetTable: "feature_sequence",
				TargetKey:   "md5",
				TargetField: "sequence",
			},
		},
	},
	"sequence": {
		Name:     "sequence",
		Table:    "feature_sequence",
		IDField:  "md5",
		Defaults: []string{"md5", "sequence_type", "sequence"},
		Derived: map[string]domain.DerivedSpec{
			"check": {Func: domain.FuncDigest, Sources: []string{"sequence"}},
		},
	},
	"contig": {
		Name:     "contig",
		Table:    "genome_sequence",
		IDField:  "sequence_id",
		Defaults: []string{"sequence_id", "accession", "length", "gc_content"},
	},
	"drug": {
		Name:     "drug",
		Table:    "antibiotics",
		IDField:  "antibiotic_name",
		Defaults: []string{"antibiotic_name", "cas_id", "description"},
		Derived: map[string]domain.DerivedSpec{
			"classes": {Func: domain.FuncConcat, Sources: []string{"atc_classification"}},
		},
	},
	"genome_drug": {
		Name:     "genome_drug",
		Table:    "genome_amr",
		IDField:  "id",
		Defaults: []string{"genome_id", "antibiotic", "resistant_phenotype"},
		Related: map[string]domain.RelatedSpec{
			"cas_id": {
				LinkField:   "antibiotic",
				TargetTable: "antibiotics",
				TargetKey:   "antibiotic_name",
				TargetField: "cas_id",
			},
		},
	},
	"family": {
		Name:     "family",
		Table:    "protein_family_ref",
		IDField:  "family_id",
		Defaults: []string{"family_id", "family_type", "family_product"},
	},
	"subsystem": {
		Name:     "subsystem",
		Table:    "subsystem_ref",
		IDField:  "subsystem_id",
		Defaults: []string{"subsystem_id", "subsystem_name", "class"},
		Derived: map[string]domain.DerivedSpec{
			"roles": {Func: domain.FuncConcat, Sources: []string{"role_name"}},
		},
	},
	"subsystem_item": {
		Name:     "subsystem_item",
		Table:    "subsystem",
		IDField:  "id",
		Defaults: []string{"id", "subsystem_name", "role_name", "patric_id"},
	},
	"sp_gene": {
		Name:     "sp_gene",
		Table:    "sp_gene",
		IDField:  "id",
		Defaults: []string{"id", "gene", "product", "property"},
	},
	"pathway": {
		Name:     "pathway",
		Table:    "pathway_ref",
		IDField:  "pathway_id",
		Defaults: []string{"pathway_id", "pathway_name", "pathway_class"},
	},
	"protein_region": {
		Name:     "protein_region",
		Table:    "protein_feature",
		IDField:  "id",
		Defaults: []string{"id", "patric_id", "description"},
	},
	"protein_structure": {
		Name:     "protein_structure",
		Table:    "protein_structure",
		IDField:  "pdb_id",
		Defaults: []string{"pdb_id", "title", "organism_name"},
	},
	"taxonomy": {
		Name:     "taxonomy",
		Table:    "taxonomy",
		IDField:  "taxon_id",
		Defaults: []string{"taxon_id", "taxon_name", "taxon_rank"},
		Derived: map[string]domain.DerivedSpec{
			"lineage": {Func: domain.FuncConcat, Sources: []string{"lineage_names"}},
		},
	},
	"experiment": {
		Name:     "experiment",
		Table:    "transcriptomics_experiment",
		IDField:  "eid",
		Defaults: []string{"eid", "title", "organism"},
	},
	"sample": {
		Name:     "sample",
		Table:    "transcriptomics_sample",
		IDField:  "pid",
		Defaults: []string{"pid", "eid", "samples"},
	},
	"expression": {
		Name:     "expression",
		Table:    "transcriptomics_gene",
		IDField:  "id",
		Defaults: []string{"id", "patric_id", "log_ratio", "z_score"},
	},
	"surveillance": {
		Name:     "surveillance",
		Table:    "surveillance",
		IDField:  "id",
		Defaults: []string{"id", "sample_identifier", "collection_country"},
	},
	"serology": {
		Name:     "serology",
		Table:    "serology",
		IDField:  "id",
		Defaults: []string{"id", "sample_identifier", "test_type", "test_result"},
	},
}

func init() {
	for name, obj := range objects {
		if err := obj.Validate(); err != nil {
			panic(fmt.Sprintf("registry: invalid schema for %s: %v", name, err))
		}
	}
}

// Lookup returns the schema for the named logical object.
func Lookup(name string) (domain.ObjectSchema, error) {
	obj, ok := objects[name]
	if !ok {
		return domain.ObjectSchema{}, domain.Specf("unknown object type %q", name)
	}
	return obj, nil
}

// Names returns the known logical object names, sorted.
func Names() []string {
	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
