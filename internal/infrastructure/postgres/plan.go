package postgres

import (
	"fmt"
	"strings"

	"github.com/askstack/askstack-api/internal/domain/query"
)

// likeEscaper neutralizes LIKE metacharacters so search text keeps
// literal substring semantics.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// whereSQL renders the plan's filter as a WHERE clause, appending
// positional arguments to args. An empty string means match-all.
func whereSQL(f query.Filter, args *[]any) string {
	var parts []string
	for _, c := range f.All {
		parts = append(parts, condSQL(c, args))
	}
	if len(f.Any) > 0 {
		var any []string
		for _, c := range f.Any {
			any = append(any, condSQL(c, args))
		}
		parts = append(parts, "("+strings.Join(any, " OR ")+")")
	}
	if len(parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

func condSQL(c query.Cond, args *[]any) string {
	switch c.Op {
	case query.OpContains:
		*args = append(*args, containsPattern(c.Value))
		return fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, c.Column, len(*args))
	default:
		*args = append(*args, c.Value)
		return fmt.Sprintf("%s = $%d", c.Column, len(*args))
	}
}

// selectSQL renders a plan into a SELECT over the given columns.
// Sort keys keep plan order and a trailing "id ASC" makes ordering
// deterministic when every other key ties.
func selectSQL(p query.Plan, columns []string) (string, []any) {
	var args []any
	var b strings.Builder

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(p.Table)
	b.WriteString(whereSQL(p.Filter, &args))

	b.WriteString(" ORDER BY ")
	for i, s := range p.Sorts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Column)
		b.WriteString(" ")
		b.WriteString(s.Direction.String())
	}
	if len(p.Sorts) == 0 {
		b.WriteString("id ASC")
	} else {
		b.WriteString(", id ASC")
	}

	if p.Offset > 0 {
		args = append(args, p.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	if p.Limit > 0 {
		args = append(args, p.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}

	return b.String(), args
}

// countSQL renders the companion count query for a filter, independent
// of pagination and ordering.
func countSQL(table string, f query.Filter) (string, []any) {
	var args []any
	return "SELECT count(*) FROM " + table + whereSQL(f, &args), args
}
