package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS headers mirror what the browser clients send: the bearer token,
// the client info and api key headers, and the JSON content type.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// CORS returns middleware that attaches permissive CORS headers to every
// response and answers preflight OPTIONS requests with 204.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", corsAllowOrigin)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
