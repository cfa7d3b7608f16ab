package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusByKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, InvalidArgument("m", "p", "body").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound("m", "p", "param", "v").HTTPStatus())
	assert.Equal(t, http.StatusConflict, Conflict("m", "p", "body", "v").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("m").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Storage("m", nil).HTTPStatus())
}

func TestAlreadyVotedIsConflictServedAsForbidden(t *testing.T) {
	err := AlreadyVoted("You already voted on this question")
	assert.Equal(t, KindConflict, err.Kind)
	assert.Equal(t, http.StatusForbidden, err.HTTPStatus())
	require.Len(t, err.Items, 1)
	assert.Equal(t, "You already voted on this question", err.Items[0].Msg)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", InvalidArgument("boom", "f", "body").Error())
}

func TestFromPassesThroughAPIErrors(t *testing.T) {
	orig := NotFound("User not found!", "user", "body", "x")
	wrapped := fmt.Errorf("lookup: %w", orig)
	assert.Same(t, orig, From(wrapped))
}

func TestFromWrapsUnknownErrorsAsStorage(t *testing.T) {
	cause := errors.New("connection refused")
	ae := From(cause)
	assert.Equal(t, KindStorage, ae.Kind)
	assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus())
	require.Len(t, ae.Items, 1)
	assert.Equal(t, "There was an error processing your request. Please, try again", ae.Items[0].Msg)
	assert.ErrorIs(t, ae, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(Conflict("m", "p", "body", "v")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", AlreadyVoted("m"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
