// Package repository defines the storage interfaces the application
// services depend on. Implementations live under
// internal/infrastructure/postgres.
package repository

import (
	"context"
	"errors"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("not found")

// UserRepository owns raw CRUD for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindOne returns the first user matching the filter, or nil when
	// none matches.
	FindOne(ctx context.Context, f query.Filter) (*entity.User, error)
	List(ctx context.Context, p query.Plan) ([]*entity.User, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	Update(ctx context.Context, u *entity.User) error
}

// QuestionRepository owns questions plus the denormalized answer/vote
// reference lists stored on them.
type QuestionRepository interface {
	Create(ctx context.Context, q *entity.Question) error
	GetByID(ctx context.Context, id string) (*entity.Question, error)
	List(ctx context.Context, p query.Plan) ([]*entity.Question, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	// AppendAnswerRef and AppendVoteRef push a child id onto the
	// question's reference list. They are not idempotent; callers invoke
	// them exactly once per successful child creation.
	AppendAnswerRef(ctx context.Context, questionID, answerID string) error
	AppendVoteRef(ctx context.Context, questionID, voteID string) error
}

// AnswerRepository owns answers and their vote reference list.
type AnswerRepository interface {
	Create(ctx context.Context, a *entity.Answer) error
	GetByID(ctx context.Context, id string) (*entity.Answer, error)
	List(ctx context.Context, p query.Plan) ([]*entity.Answer, error)
	Count(ctx context.Context, f query.Filter) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	AppendVoteRef(ctx context.Context, answerID, voteID string) error
}

// VoteRepository stores votes for one target kind (question or answer).
type VoteRepository interface {
	Create(ctx context.Context, v *entity.Vote) error
	// FindByTargetAndVoter returns the voter's existing vote on the
	// target, or nil when the voter has not voted yet.
	FindByTargetAndVoter(ctx context.Context, targetID, voterID string) (*entity.Vote, error)
	CountByTarget(ctx context.Context, targetID, direction string) (int64, error)
}
