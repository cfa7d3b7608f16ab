package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/askstack/askstack-api/internal/application"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/pkg/projection"
	"github.com/askstack/askstack-api/pkg/response"
)

type AnswerHandler struct {
	Svc    *application.AnswerService
	Logger *logrus.Logger
}

func NewAnswerHandler(svc *application.AnswerService, logger *logrus.Logger) *AnswerHandler {
	return &AnswerHandler{Svc: svc, Logger: logger}
}

// Get returns one answer with its author and question populated inline.
func (h *AnswerHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("answerId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, h.Svc.Render(c.Request.Context(), a), "", nil)
}

func (h *AnswerHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	answers, total, err := h.Svc.Search(c.Request.Context(), c.Query("query"), page, limit, orderByParam(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]map[string]any, 0, len(answers))
	for _, a := range answers {
		out = append(out, projection.Project(a.Fields(), query.Answers.Public))
	}
	response.OK(c, http.StatusOK, out, "", listMeta(page, limit, total))
}

func (h *AnswerHandler) Vote(c *gin.Context) {
	var req voteRequest
	_ = c.ShouldBindJSON(&req)

	v, err := h.Svc.Vote(c.Request.Context(), c.Param("answerId"), c.GetString("userID"), req.Direction)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, projection.Project(v.FieldsAs("answer"), query.AnswerVotes.Public), "vote recorded", nil)
}
