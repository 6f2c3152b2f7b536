package domain

import (
	"strconv"
)

// ListDelimiter separates the members of a multi-valued field when a record
// value is rendered as a single output cell.
const ListDelimiter = "::"

// ResultRecord is one matched entity as decoded from the transport's JSON
// response: physical field name to value, where multi-valued fields decode to
// a list.
type ResultRecord map[string]any

// Field renders the named field as a single string. Missing fields and nulls
// render as the empty string; lists are joined with ListDelimiter.
func (r ResultRecord) Field(name string) string {
	return renderValue(r[name])
}

// List renders the named field as a list of strings. Scalar values yield a
// one-element list; missing fields yield nil.
func (r ResultRecord) List(name string) []string {
	switch v := r[name].(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, renderValue(item))
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return []string{renderValue(v)}
	}
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []any:
		out := ""
		for i, item := range val {
			if i > 0 {
				out += ListDelimiter
			}
			out += renderValue(item)
		}
		return out
	case []string:
		out := ""
		for i, item := range val {
			if i > 0 {
				out += ListDelimiter
			}
			out += item
		}
		return out
	default:
		return ""
	}
}

// Couplet tags one caller-supplied input row with the value of its key
// column, so query results can be correlated back to the row that asked for
// them.
type Couplet struct {
	Key string
	Row []string
}

// OutputRow is one finished result line: any correlation prefix followed by
// the computed output columns, in request order.
type OutputRow []string
