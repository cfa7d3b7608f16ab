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

var questionColumns = []string{
	"id", "title", "body", "author_id", "answer_ids", "vote_ids",
	"created_at", "updated_at",
}

type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

func scanQuestion(row pgx.Row) (*entity.Question, error) {
	q := &entity.Question{}
	err := row.Scan(&q.ID, &q.Title, &q.Body, &q.AuthorID, &q.AnswerIDs,
		&q.VoteIDs, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO questions (id, title, body, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, q.ID, q.Title, q.Body, q.AuthorID)

	if err := row.Scan(&q.CreatedAt, &q.UpdatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return apierr.Conflict("A question with that title already exists",
				"title", "body", q.Title)
		}
		return apierr.Storage("There was an error creating the question", err)
	}
	return nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+strings.Join(questionColumns, ", ")+`
		FROM questions
		WHERE id = $1
	`, id)

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apierr.Storage("There was an error retrieving question", err)
	}
	return q, nil
}

func (r *QuestionRepository) List(ctx context.Context, p query.Plan) ([]*entity.Question, error) {
	sql, args := selectSQL(p, questionColumns)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apierr.Storage("There was an error retrieving questions", err)
	}
	defer rows.Close()

	var questions []*entity.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, apierr.Storage("There was an error retrieving questions", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.Storage("There was an error retrieving questions", err)
	}
	return questions, nil
}

func (r *QuestionRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	sql, args := countSQL("questions", f)
	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apierr.Storage("There was an error counting questions", err)
	}
	return n, nil
}

func (r *QuestionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)", id).Scan(&found)
	if err != nil {
		return false, apierr.Storage("There was an error retrieving question", err)
	}
	return found, nil
}

func (r *QuestionRepository) AppendAnswerRef(ctx context.Context, questionID, answerID string) error {
	return appendChildRef(ctx, r.pool, "questions", "answer_ids", questionID, answerID)
}

func (r *QuestionRepository) AppendVoteRef(ctx context.Context, questionID, voteID string) error {
	return appendChildRef(ctx, r.pool, "questions", "vote_ids", questionID, voteID)
}

var _ repository.QuestionRepository = (*QuestionRepository)(nil)
