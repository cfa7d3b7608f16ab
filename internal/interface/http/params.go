package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/askstack/askstack-api/internal/domain/query"
)

// pageParams reads page/limit from the query string. Missing or malformed
// values fall through to zero and get clamped by the query builder.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

// orderByParam parses the sort parameter. The format chains field:direction
// pairs with "=", e.g. "sort=votes:desc=creationDate:asc". A pair without a
// direction keeps an empty token, which the builder treats as ascending.
func orderByParam(c *gin.Context) []query.OrderBy {
	raw := c.Query("sort")
	if raw == "" {
		return nil
	}
	var out []query.OrderBy
	for _, pair := range strings.Split(raw, "=") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		ob := query.OrderBy{Field: parts[0]}
		if len(parts) == 2 {
			ob.Token = parts[1]
		}
		out = append(out, ob)
	}
	return out
}

// listMeta is the envelope meta block for paginated collections.
func listMeta(page, limit int, total int64) map[string]any {
	m := map[string]any{"page": page, "limit": limit}
	if total >= 0 {
		m["total"] = total
	}
	return m
}
