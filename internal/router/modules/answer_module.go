package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/askstack/askstack-api/internal/container"
	handlers "github.com/askstack/askstack-api/internal/interface/http"
	"github.com/askstack/askstack-api/internal/interface/middleware"
	"github.com/askstack/askstack-api/pkg/helpers"
)

// AnswerModule wires answer routes.
// Public: GET /api/answers/search, GET /api/answers/:answerId
// Protected: POST /api/answers/:answerId/votes
type AnswerModule struct {
	Handler *handlers.AnswerHandler
	JWT     *helpers.JWTManager
}

func NewAnswerModule(h *handlers.AnswerHandler, jwt *helpers.JWTManager) *AnswerModule {
	return &AnswerModule{Handler: h, JWT: jwt}
}

func (m *AnswerModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/answers/search", readLimiter, m.Handler.Search)
	rg.GET("/answers/:answerId", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/answers/:answerId/votes", m.Handler.Vote)
	}
}
