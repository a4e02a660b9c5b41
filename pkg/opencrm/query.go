package opencrm

import (
	"fmt"
	"strings"
)

// Operator is a comparison understood by OpenCRM's query_string filter.
// OpenCRM has no negated operators, so none exist here.
type Operator string

const (
	OpEquals   Operator = "="
	OpLike     Operator = "LIKE"
	OpBegins   Operator = "BEGINS"
	OpEnds     Operator = "ENDS"
	OpContains Operator = "CONTAINS"
)

const querySeparator = "|"

// Operators lists every supported operator.
func Operators() []Operator {
	return []Operator{OpEquals, OpLike, OpBegins, OpEnds, OpContains}
}

// Valid reports whether o is a supported operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpLike, OpBegins, OpEnds, OpContains:
		return true
	default:
		return false
	}
}

// Query is a single filter condition. OpenCRM only honours one condition
// per request, so there is no way to combine queries.
type Query struct {
	field    string
	operator Operator
	value    string
}

// Equals matches records where field equals value exactly.
func Equals(field, value string) Query {
	return Query{field: field, operator: OpEquals, value: value}
}

// Like matches field against a pattern; % is the wildcard and is sent as is.
func Like(field, pattern string) Query {
	return Query{field: field, operator: OpLike, value: pattern}
}

// BeginsWith matches records where field starts with value.
func BeginsWith(field, value string) Query {
	return Query{field: field, operator: OpBegins, value: value}
}

// EndsWith matches records where field ends with value.
func EndsWith(field, value string) Query {
	return Query{field: field, operator: OpEnds, value: value}
}

// Contains matches records where field contains value.
func Contains(field, value string) Query {
	return Query{field: field, operator: OpContains, value: value}
}

// Where builds a condition from an explicit operator.
func Where(field string, operator Operator, value string) (Query, error) {
	if !operator.Valid() {
		return Query{}, &ValidationError{Field: "operator", Message: fmt.Sprintf("unsupported operator %q", operator)}
	}

	return Query{field: field, operator: operator, value: value}, nil
}

// ParseQuery parses a raw "field|OP|value" string. The value may itself
// contain the separator.
func ParseQuery(raw string) (Query, error) {
	parts := strings.SplitN(raw, querySeparator, 3)
	if len(parts) != 3 || parts[0] == "" {
		return Query{}, &ValidationError{Field: "query", Message: fmt.Sprintf("expected field|OPERATOR|value, got %q", raw)}
	}

	return Where(parts[0], Operator(strings.ToUpper(parts[1])), parts[2])
}

// Field returns the filtered field name.
func (q Query) Field() string { return q.field }

// Operator returns the comparison operator.
func (q Query) Operator() Operator { return q.operator }

// Value returns the comparison value.
func (q Query) Value() string { return q.value }

// IsZero reports whether q holds no condition.
func (q Query) IsZero() bool {
	return q.field == "" && q.operator == ""
}

// String returns the wire form sent as query_string: field|OP|value.
func (q Query) String() string {
	if q.IsZero() {
		return ""
	}

	return q.field + querySeparator + string(q.operator) + querySeparator + q.value
}
