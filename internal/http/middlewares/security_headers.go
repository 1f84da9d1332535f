package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// JSON endpoints never load anything.
	apiCSP = "default-src 'none'; frame-ancestors 'none'"

	// The docs page pulls Swagger UI from unpkg and boots it inline.
	docsCSP = "default-src 'self'; base-uri 'none'; frame-ancestors 'none'; object-src 'none'; " +
		"connect-src 'self'; img-src 'self' data: https:; font-src 'self' https://unpkg.com data:; " +
		"style-src 'self' 'unsafe-inline' https://unpkg.com; script-src 'self' 'unsafe-inline' https://unpkg.com"
)

func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h := ctx.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-site")

		csp := apiCSP
		if strings.HasPrefix(ctx.Request.URL.Path, "/docs") {
			csp = docsCSP
		}
		h.Set("Content-Security-Policy", csp)

		ctx.Next()
	}
}
