package router

import (
	"github.com/askstack/askstack-api/internal/application"
	"github.com/askstack/askstack-api/internal/container"
	pginfra "github.com/askstack/askstack-api/internal/infrastructure/postgres"
	handlers "github.com/askstack/askstack-api/internal/interface/http"
	"github.com/askstack/askstack-api/internal/router/modules"
)

// InitModules builds repositories, services and handlers and registers
// every feature module with the registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := pginfra.NewUserRepository(pool)
	questions := pginfra.NewQuestionRepository(pool)
	answers := pginfra.NewAnswerRepository(pool)
	questionVotes := pginfra.NewQuestionVoteRepository(pool)
	answerVotes := pginfra.NewAnswerVoteRepository(pool)

	userSvc := application.NewUserService(
		users,
		container.GetJWT(),
		container.GetRedis(),
		logger,
		container.GetRabbitPub(),
		container.GetGCS(),
		cfg.GCSBucket,
	)
	questionSvc := application.NewQuestionService(questions, answers, questionVotes, logger)
	answerSvc := application.NewAnswerService(answers, questions, users, answerVotes, logger)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	questionHandler := handlers.NewQuestionHandler(questionSvc, logger)
	answerHandler := handlers.NewAnswerHandler(answerSvc, logger)

	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewQuestionModule(questionHandler, container.GetJWT()))
	r.Add(modules.NewAnswerModule(answerHandler, container.GetJWT()))
}
