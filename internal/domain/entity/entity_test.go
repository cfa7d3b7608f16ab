package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidDirection(t *testing.T) {
	assert.True(t, ValidDirection("up"))
	assert.True(t, ValidDirection("down"))
	assert.True(t, ValidDirection("UP"))
	assert.True(t, ValidDirection("Down"))
	assert.False(t, ValidDirection(""))
	assert.False(t, ValidDirection("sideways"))
	assert.False(t, ValidDirection("upvote"))
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", u.FullName())

	u = &User{FirstName: "Cher"}
	assert.Equal(t, "Cher", u.FullName())
}

func TestUserFieldsOmitsCredentials(t *testing.T) {
	u := &User{
		ID: "u1", Username: "ada", FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Password: "hash",
	}
	fields := u.Fields()
	assert.NotContains(t, fields, "password")
	assert.Equal(t, "Ada Lovelace", fields["fullname"])
	assert.Equal(t, map[string]any{"first": "Ada", "last": "Lovelace"}, fields["name"])
}

func TestVoteFieldsAs(t *testing.T) {
	at := time.Now()
	v := &Vote{ID: "v1", Direction: VoteUp, TargetID: "q1", VoterID: "u1", VotedAt: at}

	fields := v.FieldsAs("question")
	assert.Equal(t, "q1", fields["question"])
	assert.Equal(t, "up", fields["direction"])
	assert.Equal(t, at, fields["voteDate"])

	fields = v.FieldsAs("answer")
	assert.Equal(t, "q1", fields["answer"])
	assert.NotContains(t, fields, "question")
}
