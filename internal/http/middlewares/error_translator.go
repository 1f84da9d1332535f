package middlewares

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/apperr"
)

// FailureObserver counts failed requests by kind.
type FailureObserver interface {
	ObserveFailure(kind string)
}

// ErrorTranslator is the only place that writes error responses. Handlers and
// middlewares push errors with c.Error and return; after the chain finishes the
// last pushed error is rendered as {"message": ...}. Unclassified errors become
// a 500 with a fixed message.
func ErrorTranslator(log *slog.Logger, obs FailureObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		classified := apperr.From(last.Err)
		status := classified.Status()

		attrs := []any{
			"kind", classified.Kind.String(),
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", last.Err.Error(),
		}
		if classified.Details != nil {
			attrs = append(attrs, "details", classified.Details)
		}
		if reqID, ok := c.Get(CtxRequestID); ok {
			attrs = append(attrs, "request_id", reqID)
		}

		if classified.Kind == apperr.KindInternal {
			log.ErrorContext(c.Request.Context(), "request_failed", attrs...)
		} else {
			log.InfoContext(c.Request.Context(), "request_failed", attrs...)
		}

		if obs != nil {
			obs.ObserveFailure(classified.Kind.String())
		}

		if c.Writer.Written() {
			return
		}

		c.AbortWithStatusJSON(status, gin.H{"message": classified.PublicMessage()})
	}
}

// Recovery turns a panic into an unclassified error for the translator.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		_ = c.Error(apperr.Wrap(apperr.KindInternal, apperr.InternalMessage, fmt.Errorf("panic: %v", rec)))
		c.Abort()
	})
}
