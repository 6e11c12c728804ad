package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"shareit/internal/logger"
)

// RequestLogger logs every request, recovers from panics, and records
// server-side failures with enough context to chase them down.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logger.ErrorLogger.Errorf(
					"panic method=%s path=%s client_ip=%s user_id=%d error=%q stack=%s",
					c.Request.Method,
					c.Request.URL.Path,
					c.ClientIP(),
					c.GetInt64("user_id"),
					err.Error(),
					string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal Server Error",
					},
				})
				return
			}

			status := c.Writer.Status()
			line := fmt.Sprintf(
				"request status=%d method=%s path=%s query=%s client_ip=%s user_id=%d latency=%s",
				status,
				c.Request.Method,
				c.Request.URL.Path,
				c.Request.URL.RawQuery,
				c.ClientIP(),
				c.GetInt64("user_id"),
				time.Since(start),
			)
			if status >= http.StatusInternalServerError {
				logger.ErrorLogger.Error(line)
			} else {
				logger.InfoLogger.Info(line)
			}
		}()

		c.Next()
	}
}
