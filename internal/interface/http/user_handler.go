package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/askstack/askstack-api/internal/application"
	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/pkg/helpers"
	"github.com/askstack/askstack-api/pkg/projection"
	"github.com/askstack/askstack-api/pkg/response"
	"github.com/askstack/askstack-api/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,alphanum,min=3,max=30"`
	FirstName string `json:"firstname" binding:"required,max=50"`
	LastName  string `json:"lastname" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func publicUser(u *entity.User) map[string]any {
	return projection.Project(u.Fields(), query.Users.Public)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, publicUser(u), "user registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, publicUser(u), "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.AbortWith(c, http.StatusUnauthorized, "missing refresh token")
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.AbortWith(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	response.OK[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, publicUser(u), "profile", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	users, err := h.Svc.List(c.Request.Context(), page, limit, orderByParam(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	response.OK(c, http.StatusOK, out, "", listMeta(page, limit, -1))
}

func (h *UserHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	users, total, err := h.Svc.Search(c.Request.Context(), c.Query("query"), page, limit, orderByParam(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	response.OK(c, http.StatusOK, out, "", listMeta(page, limit, total))
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		response.AbortWith(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetString("userID"), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, map[string]any{"avatar_url": url}, "avatar uploaded", nil)
}
