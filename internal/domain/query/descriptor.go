package query

// Descriptor describes one entity kind to the query builder: where it
// lives, how its public field names map onto storage columns, which
// fields free-text search scans, and the alias under which the creation
// timestamp is exposed.
//
// A single builder parameterized by a Descriptor replaces what would
// otherwise be a copy of the list/search machinery per entity type.
type Descriptor struct {
	Table        string
	Columns      map[string]string
	Public       []string
	SearchFields []string
	RecencyAlias string
	// RecencyColumn is the raw timestamp column the alias resolves to
	// and the column the default most-recent-first sort runs on.
	RecencyColumn string
}

const recencyColumn = "created_at"

var Users = Descriptor{
	Table: "users",
	Columns: map[string]string{
		"id":         "id",
		"username":   "username",
		"firstname":  "first_name",
		"lastname":   "last_name",
		"email":      "email",
		"signupDate": recencyColumn,
	},
	Public:        []string{"id", "username", "name", "fullname", "email", "signupDate"},
	SearchFields:  []string{"username", "firstname", "lastname"},
	RecencyAlias:  "signupDate",
	RecencyColumn: recencyColumn,
}

var Questions = Descriptor{
	Table: "questions",
	Columns: map[string]string{
		"id":           "id",
		"title":        "title",
		"body":         "body",
		"author":       "author_id",
		"creationDate": recencyColumn,
	},
	Public:        []string{"id", "title", "body", "author", "answers", "votes", "creationDate"},
	SearchFields:  []string{"title", "body"},
	RecencyAlias:  "creationDate",
	RecencyColumn: recencyColumn,
}

var Answers = Descriptor{
	Table: "answers",
	Columns: map[string]string{
		"id":           "id",
		"body":         "body",
		"question":     "question_id",
		"author":       "author_id",
		"creationDate": recencyColumn,
	},
	Public:        []string{"id", "body", "question", "author", "votes", "creationDate"},
	SearchFields:  []string{"body"},
	RecencyAlias:  "creationDate",
	RecencyColumn: recencyColumn,
}

var QuestionVotes = Descriptor{
	Table: "question_votes",
	Columns: map[string]string{
		"id":        "id",
		"direction": "direction",
		"question":  "question_id",
		"voter":     "voter_id",
		"voteDate":  "voted_at",
	},
	Public:        []string{"id", "direction", "question", "voter", "voteDate"},
	RecencyAlias:  "voteDate",
	RecencyColumn: "voted_at",
}

var AnswerVotes = Descriptor{
	Table: "answer_votes",
	Columns: map[string]string{
		"id":        "id",
		"direction": "direction",
		"answer":    "answer_id",
		"voter":     "voter_id",
		"voteDate":  "voted_at",
	},
	Public:        []string{"id", "direction", "answer", "voter", "voteDate"},
	RecencyAlias:  "voteDate",
	RecencyColumn: "voted_at",
}

// Column resolves a public field name to its storage column. The second
// return is false for names the descriptor does not know.
func (d Descriptor) Column(field string) (string, bool) {
	col, ok := d.Columns[field]
	return col, ok
}
