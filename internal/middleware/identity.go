package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller's identity. Authentication happens
// upstream; by the time a request reaches this service the header holds
// an already verified numeric user id.
const UserIDHeader = "X-Sharer-User-Id"

// Identity parses the user id header into the context under "user_id".
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_USER_ID",
					"message": "Missing " + UserIDHeader + " header",
				},
			})
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_USER_ID",
					"message": "Invalid " + UserIDHeader + " header",
				},
			})
			return
		}

		c.Set("user_id", userID)

		c.Next()
	}
}
