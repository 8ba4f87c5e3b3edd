package store

import "regexp"

// Direction controls sort order for query results.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// identifierPattern limits filter and order fields to plain column names.
// Queries are equality-only and AND-only, so filter evaluation order never
// affects the result set.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Filter is a single equality constraint.
type Filter struct {
	Field string
	Value any
}

// Query describes which records to retrieve: a conjunction of equality
// filters, an optional single ordering, and an optional limit. The zero value
// matches the entire collection with no implicit limit; callers listing large
// collections must impose one.
type Query struct {
	filters    []Filter
	orderField string
	orderDir   Direction
	limit      int
}

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{}
}

// Where adds an equality filter. Filters compose with AND semantics.
func (q Query) Where(field string, value any) Query {
	q.filters = append(append([]Filter(nil), q.filters...), Filter{Field: field, Value: value})
	return q
}

// OrderBy sets the ordering field and direction. An empty direction defaults
// to descending.
func (q Query) OrderBy(field string, dir Direction) Query {
	if dir == "" {
		dir = Descending
	}
	q.orderField = field
	q.orderDir = dir
	return q
}

// Limit caps the number of records returned. Ordering is always applied
// before the limit.
func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

// Filters exposes the equality constraints, primarily for key derivation.
func (q Query) Filters() []Filter {
	return q.filters
}

// OrderField returns the configured ordering field, empty when unordered.
func (q Query) OrderField() string {
	return q.orderField
}

// OrderDirection returns the configured direction.
func (q Query) OrderDirection() Direction {
	return q.orderDir
}

// LimitValue returns the configured limit, zero when unlimited.
func (q Query) LimitValue() int {
	return q.limit
}

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
