package progress

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

// Handler exposes progress endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches progress routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/progress", h.getProgress)
	rg.POST("/progress/update", h.updateProgress)
	rg.GET("/recommendations", h.recommendations)
}

func (h *Handler) getProgress(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		storeError(c, err, "failed to fetch progress")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) updateProgress(c *gin.Context) {
	var req Update
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid json body", nil)
		return
	}
	p, err := h.Svc.Record(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		if errors.Is(err, ErrInvalidUpdate) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unknown action or negative xp", gin.H{"action": req.Action})
			return
		}
		storeError(c, err, "failed to update progress")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) recommendations(c *gin.Context) {
	report, err := h.Svc.Recommendations(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		storeError(c, err, "failed to build recommendations")
		return
	}
	respond.OK(c, report)
}

func storeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, message, nil)
	}
}
