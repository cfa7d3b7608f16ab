package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/internal/domain/repository"
	"github.com/askstack/askstack-api/pkg/apierr"
)

// QuestionService owns question creation, listing and search, plus the
// question-scoped child flows: posting answers and voting. After a child
// write succeeds its id is appended to the question's denormalized
// reference list; a failed append leaves the child in place and surfaces
// the storage error.
type QuestionService struct {
	Repo    repository.QuestionRepository
	Answers repository.AnswerRepository
	Votes   repository.VoteRepository
	Logger  *logrus.Logger
}

func NewQuestionService(repo repository.QuestionRepository, answers repository.AnswerRepository, votes repository.VoteRepository, logger *logrus.Logger) *QuestionService {
	return &QuestionService{Repo: repo, Answers: answers, Votes: votes, Logger: logger}
}

// Create stores a new question. A duplicate title is a conflict; nothing
// is persisted in that case.
func (s *QuestionService) Create(ctx context.Context, title, body, authorID string) (*entity.Question, error) {
	q := &entity.Question{
		ID:       uuid.NewString(),
		Title:    title,
		Body:     body,
		AuthorID: authorID,
	}
	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*entity.Question, error) {
	q, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierr.NotFound("Question does not exist", "questionId", "param", id)
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(ctx context.Context, page, limit int, orderBy []query.OrderBy) ([]*entity.Question, error) {
	plan := query.Build(query.Questions, query.Filter{}, page, limit, orderBy)
	return s.Repo.List(ctx, plan)
}

// Search matches questions whose title or body contains the text.
func (s *QuestionService) Search(ctx context.Context, text string, page, limit int, orderBy []query.OrderBy) ([]*entity.Question, int64, error) {
	plan, filter, err := query.Search(query.Questions, text, page, limit, orderBy)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	questions, err := s.Repo.List(ctx, plan)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// CreateAnswer posts an answer to an existing question and appends its
// id to the question's answer list.
func (s *QuestionService) CreateAnswer(ctx context.Context, questionID, authorID, body string) (*entity.Answer, error) {
	found, err := s.Repo.Exists(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apierr.NotFound("Question does not exist", "questionId", "param", questionID)
	}

	a := &entity.Answer{
		ID:         uuid.NewString(),
		Body:       body,
		QuestionID: questionID,
		AuthorID:   authorID,
	}
	if err := s.Answers.Create(ctx, a); err != nil {
		return nil, err
	}

	if err := s.Repo.AppendAnswerRef(ctx, questionID, a.ID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"question_id": questionID,
				"answer_id":   a.ID,
			}).Error("answer created but question reference append failed")
		}
		return nil, err
	}
	return a, nil
}

// Vote records an up/down vote on a question. At most one vote per
// (voter, question) is allowed; a second attempt is rejected outright
// with no vote-update path.
func (s *QuestionService) Vote(ctx context.Context, questionID, voterID, direction string) (*entity.Vote, error) {
	if err := validateDirection(direction); err != nil {
		return nil, err
	}

	found, err := s.Repo.Exists(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apierr.NotFound("Question does not exist", "questionId", "param", questionID)
	}

	existing, err := s.Votes.FindByTargetAndVoter(ctx, questionID, voterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.AlreadyVoted("You already voted on this question")
	}

	v := &entity.Vote{
		ID:        uuid.NewString(),
		Direction: direction,
		TargetID:  questionID,
		VoterID:   voterID,
	}
	if err := s.Votes.Create(ctx, v); err != nil {
		// A concurrent vote slipped in between the check and the insert;
		// the unique index caught it.
		if apierr.KindOf(err) == apierr.KindConflict {
			if s.Logger != nil {
				s.Logger.WithFields(logrus.Fields{
					"question_id": questionID,
					"voter_id":    voterID,
				}).Warn("duplicate vote blocked by storage constraint")
			}
			return nil, apierr.AlreadyVoted("You already voted on this question")
		}
		return nil, err
	}

	if err := s.Repo.AppendVoteRef(ctx, questionID, v.ID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"question_id": questionID,
				"vote_id":     v.ID,
			}).Error("vote created but question reference append failed")
		}
		return nil, err
	}
	return v, nil
}

func validateDirection(direction string) error {
	if direction == "" {
		return apierr.InvalidArgument("The direction field is required", "direction", "body")
	}
	if !entity.ValidDirection(direction) {
		return apierr.InvalidArgument(
			`The value of the direction field can only be either of "up" or "down"`,
			"direction", "body")
	}
	return nil
}
