package query

import (
	"strings"

	"github.com/askstack/askstack-api/pkg/apierr"
)

// Search turns a free-text query into a plan matching entities whose
// search fields contain text as a case-insensitive literal substring.
// The filter is returned alongside the plan so callers can run the
// companion count with identical predicate semantics.
//
// Empty or whitespace-only text is an invalid argument; pagination and
// sorting behave exactly as in Build.
func Search(d Descriptor, text string, page, limit int, orderBy []OrderBy) (Plan, Filter, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Plan{}, Filter{}, apierr.InvalidArgument("Please specify the query to search for", "query", "query")
	}

	f := Filter{}
	for _, field := range d.SearchFields {
		col, ok := d.Column(field)
		if !ok {
			continue
		}
		f.Any = append(f.Any, Cond{Column: col, Op: OpContains, Value: text})
	}

	return Build(d, f, page, limit, orderBy), f, nil
}
