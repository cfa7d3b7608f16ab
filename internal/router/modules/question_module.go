package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/askstack/askstack-api/internal/container"
	handlers "github.com/askstack/askstack-api/internal/interface/http"
	"github.com/askstack/askstack-api/internal/interface/middleware"
	"github.com/askstack/askstack-api/pkg/helpers"
)

// QuestionModule wires question routes.
// Public: GET /api/questions, GET /api/questions/search, GET /api/questions/:questionId
// Protected: POST /api/questions, POST /api/questions/:questionId/answers,
// POST /api/questions/:questionId/votes
type QuestionModule struct {
	Handler *handlers.QuestionHandler
	JWT     *helpers.JWTManager
}

func NewQuestionModule(h *handlers.QuestionHandler, jwt *helpers.JWTManager) *QuestionModule {
	return &QuestionModule{Handler: h, JWT: jwt}
}

func (m *QuestionModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/questions", readLimiter, m.Handler.List)
	rg.GET("/questions/search", readLimiter, m.Handler.Search)
	rg.GET("/questions/:questionId", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/questions", m.Handler.Create)
		auth.POST("/questions/:questionId/answers", m.Handler.CreateAnswer)
		auth.POST("/questions/:questionId/votes", m.Handler.Vote)
	}
}
