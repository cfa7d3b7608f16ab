package entity

import "time"

// Question holds a unique title, the question body and denormalized
// reference lists of answer and vote ids. The lists are append-only and
// eventually consistent with the answers/votes tables.
type Question struct {
	ID        string
	Title     string
	Body      string
	AuthorID  string
	AnswerIDs []string
	VoteIDs   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Question) Fields() map[string]any {
	return map[string]any{
		"id":           q.ID,
		"title":        q.Title,
		"body":         q.Body,
		"author":       q.AuthorID,
		"answers":      q.AnswerIDs,
		"votes":        q.VoteIDs,
		"creationDate": q.CreatedAt,
	}
}
