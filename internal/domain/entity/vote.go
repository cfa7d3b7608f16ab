package entity

import (
	"strings"
	"time"
)

// Vote directions. Anything else is rejected before a vote is created.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// ValidDirection reports whether dir is one of the accepted vote
// directions, ignoring case.
func ValidDirection(dir string) bool {
	switch strings.ToLower(dir) {
	case VoteUp, VoteDown:
		return true
	}
	return false
}

// Vote records a single user's up/down vote on one target (a question or
// an answer; the target kind is fixed by the table the vote lives in).
// Votes are created once and never mutated or deleted.
type Vote struct {
	ID        string
	Direction string
	TargetID  string
	VoterID   string
	VotedAt   time.Time
}

// FieldsAs exposes the vote's fields with the target under the given key
// ("question" or "answer"), matching the vocabulary of the table it
// belongs to.
func (v *Vote) FieldsAs(targetKey string) map[string]any {
	return map[string]any{
		"id":        v.ID,
		"direction": v.Direction,
		targetKey:   v.TargetID,
		"voter":     v.VoterID,
		"voteDate":  v.VotedAt,
	}
}
