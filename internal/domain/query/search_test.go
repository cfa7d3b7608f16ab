package query

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askstack/askstack-api/pkg/apierr"
)

func TestSearchRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		_, _, err := Search(Questions, text, 1, 10, nil)
		require.Error(t, err)

		ae := apierr.From(err)
		assert.Equal(t, apierr.KindInvalidArgument, ae.Kind)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus())
		require.Len(t, ae.Items, 1)
		assert.Equal(t, "Please specify the query to search for", ae.Items[0].Msg)
		assert.Equal(t, "query", ae.Items[0].Param)
	}
}

func TestSearchBuildsAnyFilterOverSearchFields(t *testing.T) {
	plan, filter, err := Search(Questions, "postgres", 1, 10, nil)
	require.NoError(t, err)

	require.Len(t, filter.Any, 2)
	assert.Equal(t, Cond{Column: "title", Op: OpContains, Value: "postgres"}, filter.Any[0])
	assert.Equal(t, Cond{Column: "body", Op: OpContains, Value: "postgres"}, filter.Any[1])
	assert.Empty(t, filter.All)

	// the same filter rides inside the plan so list and count agree
	assert.Equal(t, filter, plan.Filter)
	assert.Equal(t, "questions", plan.Table)
}

func TestSearchTrimsText(t *testing.T) {
	_, filter, err := Search(Users, "  ada  ", 1, 10, nil)
	require.NoError(t, err)
	require.Len(t, filter.Any, 3)
	for _, c := range filter.Any {
		assert.Equal(t, "ada", c.Value)
	}
}

func TestSearchPaginatesLikeBuild(t *testing.T) {
	plan, _, err := Search(Answers, "cache", 3, 25, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, plan.Offset)
	assert.Equal(t, 25, plan.Limit)
}
