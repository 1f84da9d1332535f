package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/geocoder89/mesto/internal/apperr"
)

const MsgJSONRequired = "Content-Type must be application/json"

// RequireJSON rejects body-carrying requests that are not JSON. Requests
// without a body (PUT /cards/:id/likes) pass.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.Request.ContentLength == 0 {
				break
			}
			ct := c.GetHeader("Content-Type")
			// allow "application/json; charset=utf-8"
			if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				_ = c.Error(apperr.BadRequest(MsgJSONRequired))
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
