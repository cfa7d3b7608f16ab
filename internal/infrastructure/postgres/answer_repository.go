package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/internal/domain/repository"
	"github.com/askstack/askstack-api/pkg/apierr"
)

var answerColumns = []string{
	"id", "body", "question_id", "author_id", "vote_ids",
	"created_at", "updated_at",
}

type AnswerRepository struct {
	pool *pgxpool.Pool
}

func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

func scanAnswer(row pgx.Row) (*entity.Answer, error) {
	a := &entity.Answer{}
	err := row.Scan(&a.ID, &a.Body, &a.QuestionID, &a.AuthorID, &a.VoteIDs,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnswerRepository) Create(ctx context.Context, a *entity.Answer) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO answers (id, body, question_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, a.ID, a.Body, a.QuestionID, a.AuthorID)

	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return apierr.Storage("There was an error creating the answer", err)
	}
	return nil
}

func (r *AnswerRepository) GetByID(ctx context.Context, id string) (*entity.Answer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+strings.Join(answerColumns, ", ")+`
		FROM answers
		WHERE id = $1
	`, id)

	a, err := scanAnswer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apierr.Storage("There was an error retrieving answer", err)
	}
	return a, nil
}

func (r *AnswerRepository) List(ctx context.Context, p query.Plan) ([]*entity.Answer, error) {
	sql, args := selectSQL(p, answerColumns)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apierr.Storage("There was an error retrieving answers", err)
	}
	defer rows.Close()

	var answers []*entity.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, apierr.Storage("There was an error retrieving answers", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.Storage("There was an error retrieving answers", err)
	}
	return answers, nil
}

func (r *AnswerRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	sql, args := countSQL("answers", f)
	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apierr.Storage("There was an error counting answers", err)
	}
	return n, nil
}

func (r *AnswerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM answers WHERE id = $1)", id).Scan(&found)
	if err != nil {
		return false, apierr.Storage("There was an error retrieving answer", err)
	}
	return found, nil
}

func (r *AnswerRepository) AppendVoteRef(ctx context.Context, answerID, voteID string) error {
	return appendChildRef(ctx, r.pool, "answers", "vote_ids", answerID, voteID)
}

var _ repository.AnswerRepository = (*AnswerRepository)(nil)
