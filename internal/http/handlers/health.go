package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing dependency answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	pingers        map[string]Pinger
	isShuttingDown func() bool
}

// NewHealthHandler takes the dependencies readiness depends on, by name.
// isShuttingDown may be nil.
func NewHealthHandler(pingers map[string]Pinger, isShuttingDown func() bool) *HealthHandler {
	if isShuttingDown == nil {
		isShuttingDown = func() bool { return false }
	}
	return &HealthHandler{pingers: pingers, isShuttingDown: isShuttingDown}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz writes its own 503 bodies: availability is not part of the
// request error taxonomy, so there is no classified error for the translator
// to render. The body keeps the {"message": ...} shape.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.isShuttingDown() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"message": "shutting down"})
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
	defer cancel()

	for name, ping := range h.pingers {
		if ping == nil {
			continue
		}
		if err := ping(cctx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"message": name + " unavailable"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
