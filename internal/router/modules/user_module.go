package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/askstack/askstack-api/internal/container"
	handlers "github.com/askstack/askstack-api/internal/interface/http"
	"github.com/askstack/askstack-api/internal/interface/middleware"
	"github.com/askstack/askstack-api/pkg/helpers"
)

// UserModule wires account routes.
// Public: POST /api/users (register), POST /api/login, POST /api/refresh,
// GET /api/users, GET /api/users/search
// Protected: DELETE /api/logout, GET /api/profile, PUT /api/profile/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.POST("/users", registerLimiter, middleware.NotLoggedIn(m.JWT), m.Handler.Register)
	rg.POST("/login", loginLimiter, middleware.NotLoggedIn(m.JWT), m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	rg.GET("/users", readLimiter, m.Handler.List)
	rg.GET("/users/search", readLimiter, m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.DELETE("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
		auth.PUT("/profile/avatar", m.Handler.UploadAvatar)
	}
}
