package query

import (
	"regexp"
	"strings"

	"github.com/SEEDtk/p3-core/internal/domain"
)

var wordName = regexp.MustCompile(`^\w+$`)

// Constraints collects the raw constraint specifications gathered from the
// command line. Relational entries are of the form "field,value"; In entries
// are "field,v1,v2,..."; Required entries are bare field names, optionally
// carrying a trailing "*" qualifier.
type Constraints struct {
	Eq       []string
	Lt       []string
	Le       []string
	Gt       []string
	Ge       []string
	Ne       []string
	In       []string
	Required []string
	Keyword  string
}

// BuildFilter lowers the constraint specifications into filter clauses with
// internal field names. Values of relational constraints pass through Clean;
// in-constraint members are taken as plain tokens. Required constraints
// become equality matches against the wildcard value "*". The returned
// clauses are order-independent and ANDed by the remote service.
func BuildFilter(c Constraints, tr domain.Translator) ([]domain.FilterClause, error) {
	var clauses []domain.FilterClause

	relational := []struct {
		op    domain.FilterOp
		specs []string
	}{
		{domain.OpEq, c.Eq},
		{domain.OpLt, c.Lt},
		{domain.OpLe, c.Le},
		{domain.OpGt, c.Gt},
		{domain.OpGe, c.Ge},
		{domain.OpNe, c.Ne},
	}
	for _, group := range relational {
		for _, spec := range group.specs {
			field, value, ok := strings.Cut(spec, ",")
			if !ok || field == "" {
				return nil, domain.Specf("%s constraint %q must be of the form field,value", group.op, spec)
			}
			clauses = append(clauses, domain.FilterClause{
				Op:    group.op,
				Field: tr.ToInternal(field),
				Value: Clean(value),
			})
		}
	}

	for _, spec := range c.In {
		parts := strings.Split(spec, ",")
		if len(parts) < 2 {
			return nil, domain.Specf("in constraint %q must list a field and at least one value", spec)
		}
		field := parts[0]
		if !wordName.MatchString(field) {
			return nil, domain.Specf("invalid field name %q in in-constraint", field)
		}
		clauses = append(clauses, domain.In(tr.ToInternal(field), parts[1:]))
	}

	for _, field := range c.Required {
		base := strings.TrimSuffix(field, "*")
		if !wordName.MatchString(base) {
			return nil, domain.Specf("invalid field name %q in required-constraint", field)
		}
		clauses = append(clauses, domain.Eq(tr.ToInternal(base), "*"))
	}

	if c.Keyword != "" {
		clauses = append(clauses, domain.Keyword(c.Keyword))
	}

	return clauses, nil
}
