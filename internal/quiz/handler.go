package quiz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
	"elevate-backend/internal/shared/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quiz/:topic", h.generate)
	rg.POST("/quiz/submit", h.submit)
	rg.GET("/history/quizzes", h.history)
	rg.GET("/history/quizzes/export", h.export)
}

type submitRequest struct {
	Topic          string         `json:"topic"`
	QuizID         string         `json:"quizId"`
	Questions      []Question     `json:"questions"`
	Answers        map[string]any `json:"answers"`
	TotalQuestions int            `json:"total_questions"`
}

func (h *Handler) generate(c *gin.Context) {
	topic := c.Param("topic")
	c.Set("topic", topic)
	set, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), topic)
	if err != nil {
		writeError(c, err, "failed to generate quiz")
		return
	}
	c.Set("quizId", set.ID)
	respond.OK(c, set)
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	answers, clientScore, err := ParseAnswers(req.Answers)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		return
	}
	c.Set("topic", req.Topic)
	if req.QuizID != "" {
		c.Set("quizId", req.QuizID)
	}

	res, attempt, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), SubmitInput{
		Topic:          req.Topic,
		QuizID:         req.QuizID,
		Questions:      req.Questions,
		Answers:        answers,
		ClientScore:    clientScore,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		writeError(c, err, "failed to submit quiz")
		return
	}
	c.Set("attemptId", attempt.ID)
	respond.OK(c, res)
}

func (h *Handler) history(c *gin.Context) {
	attempts, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load quiz history")
		return
	}
	if attempts == nil {
		attempts = []Attempt{}
	}
	respond.OK(c, attempts)
}

func (h *Handler) export(c *gin.Context) {
	data, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to export quiz history")
		return
	}
	name, err := util.SanitizeFileName(fmt.Sprintf("quiz history %s.xlsx", time.Now().UTC().Format("2006-01-02")))
	if err != nil {
		name = "quiz_history.xlsx"
	}
	respond.Attachment(c, name, xlsxContentType, data)
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrInvalidTopic), errors.Is(err, ErrInvalidSubmit):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "quiz not found", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "AI service error", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, message, nil)
	}
}
