package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/askstack/askstack-api/config"
	"github.com/askstack/askstack-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "Passw0rd!"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var askerID string
	err = db.QueryRow(`
		INSERT INTO users (id, username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, uuid.NewString(), "demoasker", "Demo", "Asker", "asker@example.com", hash).Scan(&askerID)
	if err != nil {
		log.Fatalf("failed to seed asker: %v", err)
	}

	var answererID string
	err = db.QueryRow(`
		INSERT INTO users (id, username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, uuid.NewString(), "demoanswerer", "Demo", "Answerer", "answerer@example.com", hash).Scan(&answererID)
	if err != nil {
		log.Fatalf("failed to seed answerer: %v", err)
	}
	fmt.Printf("seeded users: asker=%s answerer=%s password=%s\n", askerID, answererID, password)

	var questionID string
	err = db.QueryRow(`
		INSERT INTO questions (id, title, body, author_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title) DO UPDATE SET updated_at = now()
		RETURNING id
	`, uuid.NewString(), "How do I paginate large result sets?",
		"What is the recommended way to paginate and sort large collections without loading everything into memory?",
		askerID).Scan(&questionID)
	if err != nil {
		log.Fatalf("failed to seed question: %v", err)
	}

	answerID := uuid.NewString()
	if _, err := db.Exec(`
		INSERT INTO answers (id, body, question_id, author_id)
		VALUES ($1, $2, $3, $4)
	`, answerID, "Use offset pagination with a stable sort column and cap the page size.", questionID, answererID); err != nil {
		log.Fatalf("failed to seed answer: %v", err)
	}
	if _, err := db.Exec(`
		UPDATE questions SET answer_ids = array_append(answer_ids, $1), updated_at = now() WHERE id = $2
	`, answerID, questionID); err != nil {
		log.Fatalf("failed to link answer: %v", err)
	}
	fmt.Printf("seeded question=%s answer=%s\n", questionID, answerID)
}
