package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/askstack/askstack-api/internal/application"
	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/pkg/projection"
	"github.com/askstack/askstack-api/pkg/response"
	"github.com/askstack/askstack-api/pkg/validation"
)

type QuestionHandler struct {
	Svc    *application.QuestionService
	Logger *logrus.Logger
}

func NewQuestionHandler(svc *application.QuestionService, logger *logrus.Logger) *QuestionHandler {
	return &QuestionHandler{Svc: svc, Logger: logger}
}

type createQuestionRequest struct {
	Title string `json:"title" binding:"required,min=10,max=150"`
	Body  string `json:"body" binding:"required,min=10"`
}

type createAnswerRequest struct {
	Body string `json:"body" binding:"required,min=10"`
}

type voteRequest struct {
	Direction string `json:"direction"`
}

func publicQuestion(q *entity.Question) map[string]any {
	return projection.Project(q.Fields(), query.Questions.Public)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}

	q, err := h.Svc.Create(c.Request.Context(), req.Title, req.Body, c.GetString("userID"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, publicQuestion(q), "question created", nil)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	q, err := h.Svc.Get(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, publicQuestion(q), "", nil)
}

func (h *QuestionHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	questions, err := h.Svc.List(c.Request.Context(), page, limit, orderByParam(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, publicQuestion(q))
	}
	response.OK(c, http.StatusOK, out, "", listMeta(page, limit, -1))
}

func (h *QuestionHandler) Search(c *gin.Context) {
	page, limit := pageParams(c)
	questions, total, err := h.Svc.Search(c.Request.Context(), c.Query("query"), page, limit, orderByParam(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]map[string]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, publicQuestion(q))
	}
	response.OK(c, http.StatusOK, out, "", listMeta(page, limit, total))
}

func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	var req createAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailWith(c, http.StatusBadRequest, validation.ToItems(err))
		return
	}

	a, err := h.Svc.CreateAnswer(c.Request.Context(), c.Param("questionId"), c.GetString("userID"), req.Body)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, projection.Project(a.Fields(), query.Answers.Public), "answer created", nil)
}

func (h *QuestionHandler) Vote(c *gin.Context) {
	var req voteRequest
	// direction validation happens in the service so the error message
	// matches the vote rules exactly; an unreadable body means no direction
	_ = c.ShouldBindJSON(&req)

	v, err := h.Svc.Vote(c.Request.Context(), c.Param("questionId"), c.GetString("userID"), req.Direction)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, projection.Project(v.FieldsAs("question"), query.QuestionVotes.Public), "vote recorded", nil)
}
