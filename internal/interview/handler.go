package interview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/interview/questions", h.questions)
	rg.POST("/interview/evaluate", h.evaluate)
	rg.POST("/interview/submit", h.submit)
	rg.GET("/history/interviews", h.history)
	rg.POST("/communication/tips", h.tips)
}

type evaluateRequest struct {
	Question       string  `json:"question"`
	Transcript     string  `json:"transcript"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type submitRequest struct {
	SessionID   string             `json:"sessionId"`
	Questions   []string           `json:"questions"`
	Transcripts map[string]string  `json:"transcripts"`
	Durations   map[string]float64 `json:"elapsed_seconds"`
}

type tipsRequest struct {
	Focus string `json:"focus"`
}

func (h *Handler) questions(c *gin.Context) {
	qs, fallback := h.Svc.Questions(c.Request.Context(), c.Query("role"))
	respond.OK(c, gin.H{"questions": qs, "fallback": fallback})
}

func (h *Handler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	rec, err := h.Svc.Evaluate(c.Request.Context(), middleware.UserIDFromContext(c), EvaluateInput{
		Question:   req.Question,
		Transcript: req.Transcript,
		Elapsed:    seconds(req.ElapsedSeconds),
	})
	if err != nil {
		writeError(c, err, "failed to evaluate answer")
		return
	}
	c.Set("interviewId", rec.ID)
	respond.OK(c, gin.H{
		"id":           rec.ID,
		"evaluation":   rec.Evaluation,
		"filler_words": rec.Fillers,
		"speech_wpm":   rec.WPM,
	})
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	takes := make(map[int]Take, len(req.Transcripts))
	for key, transcript := range req.Transcripts {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "transcript keys must be question indices", gin.H{"key": key})
			return
		}
		takes[idx] = Take{Transcript: transcript, Elapsed: seconds(req.Durations[key])}
	}
	if req.SessionID != "" {
		c.Set("interviewId", req.SessionID)
	}

	out, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), SubmitInput{
		SessionID: req.SessionID,
		Questions: req.Questions,
		Takes:     takes,
	})
	if err != nil {
		writeError(c, err, "failed to evaluate interview")
		return
	}
	c.Set("interviewId", out.SessionID)
	respond.OK(c, out)
}

func (h *Handler) history(c *gin.Context) {
	records, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load interview history")
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, records)
}

func (h *Handler) tips(c *gin.Context) {
	var req tipsRequest
	if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	tips, err := h.Svc.Tips(c.Request.Context(), req.Focus)
	if err != nil {
		writeError(c, err, "failed to load tips")
		return
	}
	respond.OK(c, gin.H{"tips": tips})
}

func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrUpstream):
		details := gin.H{}
		var item *ItemError
		if errors.As(err, &item) {
			details["questionIndex"] = item.Index
		}
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "AI service error", details)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, message, nil)
	}
}

func decodeOptionalJSON(body io.ReadCloser, out any) error {
	if body == nil {
		return nil
	}
	var errInvalidJSON = errors.New("invalid json body")
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}
