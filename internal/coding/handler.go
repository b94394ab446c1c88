package coding

import (
	"context"
	"errors"
	"io"
	"net/http"

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
	rg.POST("/code/execute", h.execute)
	rg.POST("/code/evaluate", h.evaluate)
	rg.GET("/history/code", h.history)
	rg.GET("/history/code/:id/source", h.source)
}

func (h *Handler) execute(c *gin.Context) {
	var req ExecuteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	res, err := h.Svc.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "failed to execute code")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) evaluate(c *gin.Context) {
	var req EvaluateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	sub, err := h.Svc.Evaluate(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to evaluate code")
		return
	}
	c.Set("submissionId", sub.ID)
	respond.OK(c, gin.H{"id": sub.ID, "evaluation": sub.Evaluation})
}

func (h *Handler) history(c *gin.Context) {
	subs, err := h.Svc.History(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to load code history")
		return
	}
	if subs == nil {
		subs = []Submission{}
	}
	respond.OK(c, subs)
}

func (h *Handler) source(c *gin.Context) {
	id := c.Param("id")
	c.Set("submissionId", id)
	sub, rc, err := h.Svc.Source(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to load source")
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to read source", nil)
		return
	}
	respond.Attachment(c, "solution"+extensionFor(sub.Language), "text/plain; charset=utf-8", data)
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "submission not found", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "code service error", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, message, nil)
	}
}
