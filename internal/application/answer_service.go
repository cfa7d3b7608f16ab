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
	"github.com/askstack/askstack-api/pkg/projection"
)

// AnswerService owns answer retrieval, search and answer voting.
type AnswerService struct {
	Repo      repository.AnswerRepository
	Questions repository.QuestionRepository
	Users     repository.UserRepository
	Votes     repository.VoteRepository
	Logger    *logrus.Logger
}

func NewAnswerService(repo repository.AnswerRepository, questions repository.QuestionRepository, users repository.UserRepository, votes repository.VoteRepository, logger *logrus.Logger) *AnswerService {
	return &AnswerService{Repo: repo, Questions: questions, Users: users, Votes: votes, Logger: logger}
}

func (s *AnswerService) Get(ctx context.Context, id string) (*entity.Answer, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierr.NotFound("Answer does not exist", "answerId", "param", id)
		}
		return nil, err
	}
	return a, nil
}

// Search matches answers whose body contains the text.
func (s *AnswerService) Search(ctx context.Context, text string, page, limit int, orderBy []query.OrderBy) ([]*entity.Answer, int64, error) {
	plan, filter, err := query.Search(query.Answers, text, page, limit, orderBy)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	answers, err := s.Repo.List(ctx, plan)
	if err != nil {
		return nil, 0, err
	}
	return answers, total, nil
}

// Render projects an answer onto its public fields with the author and
// question references expanded. Each expanded reference is projected
// with its own type's allowlist; expansion failures fall back to the
// bare id rather than failing the whole response.
func (s *AnswerService) Render(ctx context.Context, a *entity.Answer) map[string]any {
	fields := a.Fields()

	if author, err := s.Users.GetByID(ctx, a.AuthorID); err == nil && author != nil {
		fields["author"] = projection.Project(author.Fields(), query.Users.Public)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) && s.Logger != nil {
		s.Logger.WithError(err).WithField("answer_id", a.ID).Warn("author expansion failed")
	}

	if q, err := s.Questions.GetByID(ctx, a.QuestionID); err == nil && q != nil {
		fields["question"] = projection.Project(q.Fields(), query.Questions.Public)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) && s.Logger != nil {
		s.Logger.WithError(err).WithField("answer_id", a.ID).Warn("question expansion failed")
	}

	return projection.Project(fields, query.Answers.Public)
}

// Vote records an up/down vote on an answer, mirroring question voting:
// at most one vote per (voter, answer), rejected outright on repeat.
func (s *AnswerService) Vote(ctx context.Context, answerID, voterID, direction string) (*entity.Vote, error) {
	if err := validateDirection(direction); err != nil {
		return nil, err
	}

	found, err := s.Repo.Exists(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apierr.NotFound("Answer does not exist", "answerId", "param", answerID)
	}

	existing, err := s.Votes.FindByTargetAndVoter(ctx, answerID, voterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.AlreadyVoted("You already voted on this answer")
	}

	v := &entity.Vote{
		ID:        uuid.NewString(),
		Direction: direction,
		TargetID:  answerID,
		VoterID:   voterID,
	}
	if err := s.Votes.Create(ctx, v); err != nil {
		if apierr.KindOf(err) == apierr.KindConflict {
			if s.Logger != nil {
				s.Logger.WithFields(logrus.Fields{
					"answer_id": answerID,
					"voter_id":  voterID,
				}).Warn("duplicate vote blocked by storage constraint")
			}
			return nil, apierr.AlreadyVoted("You already voted on this answer")
		}
		return nil, err
	}

	if err := s.Repo.AppendVoteRef(ctx, answerID, v.ID); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"answer_id": answerID,
				"vote_id":   v.ID,
			}).Error("vote created but answer reference append failed")
		}
		return nil, err
	}
	return v, nil
}
