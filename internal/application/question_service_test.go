package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askstack/askstack-api/pkg/apierr"
)

func newQuestionService(questions *fakeQuestionRepo, answers *fakeAnswerRepo, votes *fakeVoteRepo) *QuestionService {
	return NewQuestionService(questions, answers, votes, nil)
}

func TestQuestionVoteRequiresDirection(t *testing.T) {
	svc := newQuestionService(newFakeQuestionRepo("q1"), newFakeAnswerRepo(), newFakeVoteRepo())

	_, err := svc.Vote(context.Background(), "q1", "u1", "")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindInvalidArgument, ae.Kind)
	assert.Equal(t, "The direction field is required", ae.Items[0].Msg)
	assert.Equal(t, "direction", ae.Items[0].Param)
}

func TestQuestionVoteRejectsUnknownDirection(t *testing.T) {
	svc := newQuestionService(newFakeQuestionRepo("q1"), newFakeAnswerRepo(), newFakeVoteRepo())

	_, err := svc.Vote(context.Background(), "q1", "u1", "sideways")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindInvalidArgument, ae.Kind)
	assert.Equal(t, `The value of the direction field can only be either of "up" or "down"`, ae.Items[0].Msg)
}

func TestQuestionVoteOnMissingQuestion(t *testing.T) {
	svc := newQuestionService(newFakeQuestionRepo(), newFakeAnswerRepo(), newFakeVoteRepo())

	_, err := svc.Vote(context.Background(), "nope", "u1", "up")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "Question does not exist", ae.Items[0].Msg)
}

func TestQuestionVoteRecordsVoteAndAppendsRef(t *testing.T) {
	questions := newFakeQuestionRepo("q1")
	votes := newFakeVoteRepo()
	svc := newQuestionService(questions, newFakeAnswerRepo(), votes)

	v, err := svc.Vote(context.Background(), "q1", "u1", "up")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "up", v.Direction)
	assert.Equal(t, "q1", v.TargetID)
	assert.Equal(t, "u1", v.VoterID)
	assert.NotEmpty(t, v.ID)

	require.Len(t, votes.created, 1)
	assert.Equal(t, []string{v.ID}, questions.voteRefs["q1"])
}

func TestQuestionVoteSecondAttemptRejected(t *testing.T) {
	questions := newFakeQuestionRepo("q1")
	votes := newFakeVoteRepo()
	svc := newQuestionService(questions, newFakeAnswerRepo(), votes)

	_, err := svc.Vote(context.Background(), "q1", "u1", "up")
	require.NoError(t, err)

	// even flipping the direction is rejected; there is no vote update
	_, err = svc.Vote(context.Background(), "q1", "u1", "down")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindConflict, ae.Kind)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus())
	assert.Equal(t, "You already voted on this question", ae.Items[0].Msg)

	require.Len(t, votes.created, 1)
	assert.Len(t, questions.voteRefs["q1"], 1)
}

func TestQuestionVoteConcurrentDuplicateCaughtByConstraint(t *testing.T) {
	// the guard saw no vote but the insert hit the unique index
	questions := newFakeQuestionRepo("q1")
	votes := newFakeVoteRepo()
	votes.createErr = apierr.Conflict("duplicate key", "vote", "body", "")
	svc := newQuestionService(questions, newFakeAnswerRepo(), votes)

	_, err := svc.Vote(context.Background(), "q1", "u1", "up")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus())
	assert.Equal(t, "You already voted on this question", ae.Items[0].Msg)
	assert.Empty(t, questions.voteRefs["q1"])
}

func TestQuestionVoteAppendFailureSurfaces(t *testing.T) {
	questions := newFakeQuestionRepo("q1")
	questions.appendErr = apierr.Storage("append failed", nil)
	votes := newFakeVoteRepo()
	svc := newQuestionService(questions, newFakeAnswerRepo(), votes)

	_, err := svc.Vote(context.Background(), "q1", "u1", "down")
	require.Error(t, err)
	assert.Equal(t, apierr.KindStorage, apierr.KindOf(err))
	// the vote itself was stored; the reference list is what lagged
	assert.Len(t, votes.created, 1)
}

func TestCreateAnswerOnMissingQuestion(t *testing.T) {
	svc := newQuestionService(newFakeQuestionRepo(), newFakeAnswerRepo(), newFakeVoteRepo())

	_, err := svc.CreateAnswer(context.Background(), "nope", "u1", "an answer body")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "Question does not exist", ae.Items[0].Msg)
	assert.Equal(t, "questionId", ae.Items[0].Param)
}

func TestCreateAnswerAppendsReference(t *testing.T) {
	questions := newFakeQuestionRepo("q1")
	answers := newFakeAnswerRepo()
	svc := newQuestionService(questions, answers, newFakeVoteRepo())

	a, err := svc.CreateAnswer(context.Background(), "q1", "u1", "use an index")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "q1", a.QuestionID)
	assert.Equal(t, "u1", a.AuthorID)
	assert.Equal(t, "use an index", a.Body)

	assert.Contains(t, answers.answers, a.ID)
	assert.Equal(t, []string{a.ID}, questions.answerRefs["q1"])
}

func TestCreateAnswerAppendFailureKeepsAnswer(t *testing.T) {
	questions := newFakeQuestionRepo("q1")
	questions.appendErr = apierr.Storage("append failed", nil)
	answers := newFakeAnswerRepo()
	svc := newQuestionService(questions, answers, newFakeVoteRepo())

	_, err := svc.CreateAnswer(context.Background(), "q1", "u1", "orphaned but persisted")
	require.Error(t, err)
	assert.Len(t, answers.answers, 1)
}

func TestQuestionGetMapsNotFound(t *testing.T) {
	svc := newQuestionService(newFakeQuestionRepo(), newFakeAnswerRepo(), newFakeVoteRepo())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	ae := apierr.From(err)
	assert.Equal(t, apierr.KindNotFound, ae.Kind)
	assert.Equal(t, "missing", ae.Items[0].Value)
}

func TestQuestionCreateSetsAuthor(t *testing.T) {
	questions := newFakeQuestionRepo()
	svc := newQuestionService(questions, newFakeAnswerRepo(), newFakeVoteRepo())

	q, err := svc.Create(context.Background(), "How to test services?", "With fakes.", "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", q.AuthorID)
	assert.NotEmpty(t, q.ID)
	assert.Contains(t, questions.questions, q.ID)
}
