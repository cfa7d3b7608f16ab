package entity

import "time"

// Answer belongs to exactly one question and carries its own denormalized
// vote reference list.
type Answer struct {
	ID         string
	Body       string
	QuestionID string
	AuthorID   string
	VoteIDs    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (a *Answer) Fields() map[string]any {
	return map[string]any{
		"id":           a.ID,
		"body":         a.Body,
		"question":     a.QuestionID,
		"author":       a.AuthorID,
		"votes":        a.VoteIDs,
		"creationDate": a.CreatedAt,
	}
}
