package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/apperr"
	"github.com/geocoder89/mesto/internal/http/middlewares"
)

const storeTimeout = 3 * time.Second

// fail hands err to the ErrorTranslator. Handlers never render errors.
func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}

// storeCtx bounds a store call by the request context and a short timeout.
func storeCtx(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), storeTimeout)
}

// callerID returns the identity the auth gate attached. Routes using it are
// always behind RequireAuth, so a miss is a wiring bug.
func callerID(ctx *gin.Context) (string, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		fail(ctx, apperr.Unauthorized(middlewares.MsgAuthRequired))
	}
	return id, ok
}
