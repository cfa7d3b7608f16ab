package query

import "strings"

// Direction is the closed set of sort directions. Tokens that parse to
// neither value fall back to Ascending.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseDirection maps a caller-supplied token onto a Direction.
// "asc"/"desc" are matched case-insensitively; anything else is Ascending.
func ParseDirection(token string) Direction {
	if strings.EqualFold(strings.TrimSpace(token), "desc") {
		return Descending
	}
	return Ascending
}

// validDirection reports whether the token names a direction exactly,
// as opposed to merely defaulting to Ascending.
func validDirection(token string) bool {
	t := strings.TrimSpace(token)
	return strings.EqualFold(t, "asc") || strings.EqualFold(t, "desc")
}

// OrderBy is one caller-supplied sort entry. Entries keep the order in
// which the caller listed them.
type OrderBy struct {
	Field string
	Token string
}

// Op is a filter predicate operator.
type Op int

const (
	// OpEqual matches the column value exactly.
	OpEqual Op = iota
	// OpContains matches when the column contains the value as a
	// case-insensitive literal substring.
	OpContains
)

// Cond is a single column predicate.
type Cond struct {
	Column string
	Op     Op
	Value  string
}

// Filter is the fixed predicate structure the engine supports: every All
// condition must hold, and at least one Any condition when Any is
// non-empty. The zero Filter matches everything.
type Filter struct {
	All []Cond
	Any []Cond
}

// IsZero reports whether the filter matches all rows.
func (f Filter) IsZero() bool {
	return len(f.All) == 0 && len(f.Any) == 0
}

// Sort is one resolved sort key of a plan.
type Sort struct {
	Column    string
	Direction Direction
}

// Plan is a complete, storage-ready query specification: filter, sort
// keys in priority order, and offset/limit pagination. Limit 0 means
// no limit. Building a plan performs no I/O.
type Plan struct {
	Table  string
	Filter Filter
	Sorts  []Sort
	Offset int
	Limit  int
}

// Build assembles a plan for one entity kind.
//
// page is 1-based; values below 1 behave as page 1. limit 0 returns all
// matches from the offset onward. Caller sort keys are applied in the
// given order; unknown field names are skipped. The descriptor's recency
// alias is handled last: without a valid direction for it the plan ends
// with created_at DESC so results are most-recent-first, otherwise
// created_at is sorted in the requested direction. Either way the alias
// sorts the raw creation timestamp, not a separate column.
func Build(d Descriptor, f Filter, page, limit int, orderBy []OrderBy) Plan {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}

	p := Plan{
		Table:  d.Table,
		Filter: f,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	recencyToken := ""
	hasRecency := false
	for _, ob := range orderBy {
		if d.RecencyAlias != "" && ob.Field == d.RecencyAlias {
			recencyToken = ob.Token
			hasRecency = true
			continue
		}
		col, ok := d.Column(ob.Field)
		if !ok {
			continue
		}
		p.Sorts = append(p.Sorts, Sort{Column: col, Direction: ParseDirection(ob.Token)})
	}

	// Most-recent-first tie-break unless the caller pinned the alias to
	// a valid direction.
	if hasRecency && validDirection(recencyToken) {
		p.Sorts = append(p.Sorts, Sort{Column: d.RecencyColumn, Direction: ParseDirection(recencyToken)})
	} else {
		p.Sorts = append(p.Sorts, Sort{Column: d.RecencyColumn, Direction: Descending})
	}

	return p
}
