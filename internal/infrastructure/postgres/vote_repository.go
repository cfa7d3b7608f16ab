package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/repository"
	"github.com/askstack/askstack-api/pkg/apierr"
)

// VoteRepository stores votes for one target kind. The same type backs
// both vote tables; only the table and target column differ.
type VoteRepository struct {
	pool         *pgxpool.Pool
	table        string
	targetColumn string
}

func NewQuestionVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool, table: "question_votes", targetColumn: "question_id"}
}

func NewAnswerVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool, table: "answer_votes", targetColumn: "answer_id"}
}

func (r *VoteRepository) Create(ctx context.Context, v *entity.Vote) error {
	v.Direction = strings.ToLower(v.Direction)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+r.table+` (id, direction, `+r.targetColumn+`, voter_id)
		VALUES ($1, $2, $3, $4)
		RETURNING voted_at
	`, v.ID, v.Direction, v.TargetID, v.VoterID)

	if err := row.Scan(&v.VotedAt); err != nil {
		// The (target, voter) unique index closes the window between the
		// duplicate-vote check and this insert under concurrent requests.
		if _, ok := uniqueViolation(err); ok {
			return apierr.Conflict("already voted", "", "", "")
		}
		return apierr.Storage("There was an error recording the vote", err)
	}
	return nil
}

func (r *VoteRepository) FindByTargetAndVoter(ctx context.Context, targetID, voterID string) (*entity.Vote, error) {
	v := &entity.Vote{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, direction, `+r.targetColumn+`, voter_id, voted_at
		FROM `+r.table+`
		WHERE `+r.targetColumn+` = $1 AND voter_id = $2
	`, targetID, voterID)

	err := row.Scan(&v.ID, &v.Direction, &v.TargetID, &v.VoterID, &v.VotedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apierr.Storage("There was an error retrieving the vote", err)
	}
	return v, nil
}

// CountByTarget counts votes on a target, optionally restricted to one
// direction.
func (r *VoteRepository) CountByTarget(ctx context.Context, targetID, direction string) (int64, error) {
	sql := "SELECT count(*) FROM " + r.table + " WHERE " + r.targetColumn + " = $1"
	args := []any{targetID}
	if direction != "" {
		sql += " AND direction = $2"
		args = append(args, strings.ToLower(direction))
	}

	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apierr.Storage("There was an error counting votes", err)
	}
	return n, nil
}

var _ repository.VoteRepository = (*VoteRepository)(nil)
