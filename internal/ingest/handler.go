package ingest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdash_backend/platform/httpkit"
)

// Enqueuer hands a sync pass to the background worker queue instead of
// running it inline on the request.
type Enqueuer interface {
	EnqueueSyncRun(ctx context.Context, trigger string) error
}

// Handler handles sync trigger HTTP requests.
type Handler struct {
	service  *Service
	enqueuer Enqueuer
}

// NewHandler creates a new ingest handler. enqueuer may be nil, in which
// case the trigger runs the pass inline and answers with its result.
func NewHandler(service *Service, enqueuer Enqueuer) *Handler {
	return &Handler{service: service, enqueuer: enqueuer}
}

// HandleTriggerSync runs a full-refresh synchronization pass, or queues one
// when an enqueuer is configured.
// POST /api/v1/sync
// Authenticated via X-Secret-Key header (set by middleware).
func (h *Handler) HandleTriggerSync(c *gin.Context) {
	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueSyncRun(c.Request.Context(), "manual"); httpkit.HandleError(c, err) {
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"queued": true})
		return
	}

	result, err := h.service.Run(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusOK, result)
}
