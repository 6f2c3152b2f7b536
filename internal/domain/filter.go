package domain

// FilterOp enumerates the clause operators understood by the transport.
type FilterOp string

const (
	OpEq      FilterOp = "eq"
	OpLt      FilterOp = "lt"
	OpLe      FilterOp = "le"
	OpGt      FilterOp = "gt"
	OpGe      FilterOp = "ge"
	OpNe      FilterOp = "ne"
	OpIn      FilterOp = "in"
	OpKeyword FilterOp = "keyword"
)

// FilterClause is one condition of a query. All clauses of a request are ANDed
// by the remote service. In-clauses carry their value as a parenthesized comma
// list; keyword clauses carry free text and no field name.
type FilterClause struct {
	Op    FilterOp
	Field string
	Value string
}

// Eq builds an equality clause.
func Eq(field, value string) FilterClause {
	return FilterClause{Op: OpEq, Field: field, Value: value}
}

// In builds a set-membership clause from raw member values.
func In(field string, values []string) FilterClause {
	value := "("
	for i, v := range values {
		if i > 0 {
			value += ","
		}
		value += v
	}
	value += ")"
	return FilterClause{Op: OpIn, Field: field, Value: value}
}

// Keyword builds a free-text clause with no field name.
func Keyword(text string) FilterClause {
	return FilterClause{Op: OpKeyword, Value: text}
}
