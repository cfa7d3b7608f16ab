package application

import (
	"context"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/internal/domain/repository"
)

// In-memory repository fakes. Error fields, when set, are returned by
// the matching method so failure paths can be driven from tests.

type fakeUserRepo struct {
	users     []*entity.User
	createErr error
	created   []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, u)
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindOne(_ context.Context, filter query.Filter) (*entity.User, error) {
	for _, u := range f.users {
		if matchesUser(u, filter) {
			return u, nil
		}
	}
	return nil, nil
}

func matchesUser(u *entity.User, filter query.Filter) bool {
	for _, c := range filter.All {
		var v string
		switch c.Column {
		case "email":
			v = u.Email
		case "username":
			v = u.Username
		case "id":
			v = u.ID
		}
		if v != c.Value {
			return false
		}
	}
	return len(filter.All) > 0
}

func (f *fakeUserRepo) List(_ context.Context, _ query.Plan) ([]*entity.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) Count(_ context.Context, _ query.Filter) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

type fakeQuestionRepo struct {
	questions   map[string]*entity.Question
	answerRefs  map[string][]string
	voteRefs    map[string][]string
	appendErr   error
	getErr      error
	existingErr error
}

func newFakeQuestionRepo(ids ...string) *fakeQuestionRepo {
	f := &fakeQuestionRepo{
		questions:  map[string]*entity.Question{},
		answerRefs: map[string][]string{},
		voteRefs:   map[string][]string{},
	}
	for _, id := range ids {
		f.questions[id] = &entity.Question{ID: id}
	}
	return f
}

func (f *fakeQuestionRepo) Create(_ context.Context, q *entity.Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id string) (*entity.Question, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	q, ok := f.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) List(_ context.Context, _ query.Plan) ([]*entity.Question, error) {
	out := make([]*entity.Question, 0, len(f.questions))
	for _, q := range f.questions {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionRepo) Count(_ context.Context, _ query.Filter) (int64, error) {
	return int64(len(f.questions)), nil
}

func (f *fakeQuestionRepo) Exists(_ context.Context, id string) (bool, error) {
	if f.existingErr != nil {
		return false, f.existingErr
	}
	_, ok := f.questions[id]
	return ok, nil
}

func (f *fakeQuestionRepo) AppendAnswerRef(_ context.Context, questionID, answerID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.answerRefs[questionID] = append(f.answerRefs[questionID], answerID)
	return nil
}

func (f *fakeQuestionRepo) AppendVoteRef(_ context.Context, questionID, voteID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.voteRefs[questionID] = append(f.voteRefs[questionID], voteID)
	return nil
}

type fakeAnswerRepo struct {
	answers   map[string]*entity.Answer
	voteRefs  map[string][]string
	createErr error
	appendErr error
}

func newFakeAnswerRepo(answers ...*entity.Answer) *fakeAnswerRepo {
	f := &fakeAnswerRepo{
		answers:  map[string]*entity.Answer{},
		voteRefs: map[string][]string{},
	}
	for _, a := range answers {
		f.answers[a.ID] = a
	}
	return f
}

func (f *fakeAnswerRepo) Create(_ context.Context, a *entity.Answer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.answers[a.ID] = a
	return nil
}

func (f *fakeAnswerRepo) GetByID(_ context.Context, id string) (*entity.Answer, error) {
	a, ok := f.answers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAnswerRepo) List(_ context.Context, _ query.Plan) ([]*entity.Answer, error) {
	out := make([]*entity.Answer, 0, len(f.answers))
	for _, a := range f.answers {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAnswerRepo) Count(_ context.Context, _ query.Filter) (int64, error) {
	return int64(len(f.answers)), nil
}

func (f *fakeAnswerRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.answers[id]
	return ok, nil
}

func (f *fakeAnswerRepo) AppendVoteRef(_ context.Context, answerID, voteID string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.voteRefs[answerID] = append(f.voteRefs[answerID], voteID)
	return nil
}

type fakeVoteRepo struct {
	votes     map[string]*entity.Vote // keyed target|voter
	createErr error
	created   []*entity.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: map[string]*entity.Vote{}}
}

func voteKey(targetID, voterID string) string { return targetID + "|" + voterID }

func (f *fakeVoteRepo) Create(_ context.Context, v *entity.Vote) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.votes[voteKey(v.TargetID, v.VoterID)] = v
	f.created = append(f.created, v)
	return nil
}

func (f *fakeVoteRepo) FindByTargetAndVoter(_ context.Context, targetID, voterID string) (*entity.Vote, error) {
	return f.votes[voteKey(targetID, voterID)], nil
}

func (f *fakeVoteRepo) CountByTarget(_ context.Context, targetID, direction string) (int64, error) {
	var n int64
	for _, v := range f.votes {
		if v.TargetID == targetID && v.Direction == direction {
			n++
		}
	}
	return n, nil
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}
