package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives one observation per finished request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, seconds float64)
}

// Metrics labels requests by the matched route pattern.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start).Seconds())
	}
}
